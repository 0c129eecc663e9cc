package prediction

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// Artifact files follow a folder + name-prefix convention, one blob per
// regressor plus one for the scaler.
const (
	reserveArtifact = "reserve"
	growthArtifact  = "growth"
	riskArtifact    = "risk"
	scalerArtifact  = "scaler"

	artifactExt = ".msgpack"
)

func artifactPath(folder, prefix, name string) string {
	return filepath.Join(folder, prefix+"_"+name+artifactExt)
}

// Save persists the trained model state as four msgpack blobs.
func (o *Optimizer) Save(folder, prefix string) error {
	if !o.trained {
		return ErrNotTrained
	}
	if err := os.MkdirAll(folder, 0755); err != nil {
		return fmt.Errorf("create model folder: %w", err)
	}

	artifacts := map[string]interface{}{
		reserveArtifact: o.reserve,
		growthArtifact:  o.growth,
		riskArtifact:    o.risk,
		scalerArtifact:  o.scaler,
	}
	for name, artifact := range artifacts {
		if err := writeArtifact(artifactPath(folder, prefix, name), artifact); err != nil {
			return err
		}
	}

	o.log.Info().Str("folder", folder).Str("prefix", prefix).Msg("Models saved")
	return nil
}

// Load restores a previously saved model state. The four artifacts are
// loaded as a unit: a partial set leaves the optimizer untrained.
func (o *Optimizer) Load(folder, prefix string) error {
	reserve := &Regressor{}
	growth := &Regressor{}
	risk := &Regressor{}
	scaler := &Scaler{}

	artifacts := map[string]interface{}{
		reserveArtifact: reserve,
		growthArtifact:  growth,
		riskArtifact:    risk,
		scalerArtifact:  scaler,
	}
	for name, artifact := range artifacts {
		if err := readArtifact(artifactPath(folder, prefix, name), artifact); err != nil {
			return err
		}
	}

	if len(scaler.Mean) != FeatureCount || len(reserve.Weights) != FeatureCount {
		return fmt.Errorf("model artifacts in %s have feature width %d, expected %d",
			folder, len(scaler.Mean), FeatureCount)
	}

	o.reserve = reserve
	o.growth = growth
	o.risk = risk
	o.scaler = scaler
	o.trained = true

	o.log.Info().Str("folder", folder).Str("prefix", prefix).Msg("Models loaded")
	return nil
}

// LoadOrTrain implements the load-or-train lifecycle: reuse persisted
// artifacts when present, otherwise generate a synthetic dataset, train,
// and persist the result for the next start.
func (o *Optimizer) LoadOrTrain(folder, prefix string, samples int, rng *rand.Rand) error {
	if err := o.Load(folder, prefix); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		o.log.Warn().Err(err).Msg("Could not load persisted models, retraining")
	}

	ds, err := o.GenerateTrainingData(samples, rng)
	if err != nil {
		return fmt.Errorf("generate training data: %w", err)
	}
	if _, err := o.Train(ds); err != nil {
		return err
	}
	return o.Save(folder, prefix)
}

func writeArtifact(path string, v interface{}) error {
	blob, err := msgpack.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, blob, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readArtifact(path string, v interface{}) error {
	blob, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := msgpack.Unmarshal(blob, v); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}
