package main

import (
	"errors"
	"fmt"

	"github.com/bnbchain/ptau-setup/keypair"
	"github.com/bnbchain/ptau-setup/parameters"
	"github.com/bnbchain/ptau-setup/phase1"
	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

func setupLogger(cCtx *cli.Context) error {
	switch {
	case cCtx.Bool("quiet"):
		logger.Disable()
	case cCtx.Bool("verbose"):
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	return nil
}

func ceremonyParameters(cCtx *cli.Context) (*parameters.CeremonyParameters, error) {
	return parameters.New(cCtx.Int("power"), parameters.WithBatchSize(cCtx.Int("batch-size")))
}

func roundOptions(cCtx *cli.Context) phase1.Options {
	return phase1.Options{
		InputCompression:  parameters.UseCompression(cCtx.Bool("compress-input")),
		OutputCompression: parameters.UseCompression(cCtx.Bool("compress-output")),
		CheckInput:        parameters.CheckForCorrectness(cCtx.Bool("check-input")),
	}
}

func initialize(cCtx *cli.Context) error {
	// sanity check
	if cCtx.Args().Len() != 1 {
		return errors.New("please provide the correct arguments")
	}
	p, err := ceremonyParameters(cCtx)
	if err != nil {
		return err
	}
	_, err = phase1.Initialize(cCtx.Args().Get(0), p, parameters.UseCompression(cCtx.Bool("compress")))
	return err
}

func contribute(cCtx *cli.Context) error {
	// sanity check
	if cCtx.Args().Len() != 2 {
		return errors.New("please provide the correct arguments")
	}
	p, err := ceremonyParameters(cCtx)
	if err != nil {
		return err
	}
	entropy := cCtx.String("entropy")
	if entropy == "" {
		if entropy, err = promptEntropy(cCtx.App.Reader, cCtx.App.Writer); err != nil {
			return err
		}
	}
	seed, err := systemSeed([]byte(entropy))
	if err != nil {
		return err
	}
	_, err = phase1.Contribute(cCtx.Args().Get(0), cCtx.Args().Get(1), p, roundOptions(cCtx), keypair.NewRNG(seed))
	return err
}

func beacon(cCtx *cli.Context) error {
	// sanity check
	if cCtx.Args().Len() != 2 {
		return errors.New("please provide the correct arguments")
	}
	p, err := ceremonyParameters(cCtx)
	if err != nil {
		return err
	}
	seed, err := beaconSeed(cCtx.String("beacon-hash"), cCtx.Uint("beacon-iterations"))
	if err != nil {
		return err
	}
	_, err = phase1.Contribute(cCtx.Args().Get(0), cCtx.Args().Get(1), p, roundOptions(cCtx), keypair.NewRNG(seed))
	return err
}

func verify(cCtx *cli.Context) error {
	// sanity check
	if cCtx.Args().Len() != 3 {
		return errors.New("please provide the correct arguments")
	}
	p, err := ceremonyParameters(cCtx)
	if err != nil {
		return err
	}
	_, err = phase1.Verify(cCtx.Args().Get(0), cCtx.Args().Get(1), cCtx.Args().Get(2), p, roundOptions(cCtx))
	return err
}

func extract(cCtx *cli.Context) error {
	// sanity check
	if cCtx.Args().Len() != 2 {
		return errors.New("please provide the correct arguments")
	}
	p, err := ceremonyParameters(cCtx)
	if err != nil {
		return err
	}
	n := cCtx.Int("count")
	if n > p.TauPowersLength {
		return fmt.Errorf("can't extract %d powers from a ceremony of power %d", n, p.Power)
	}
	return phase1.Extract(cCtx.Args().Get(0), cCtx.Args().Get(1), p, n,
		parameters.UseCompression(cCtx.Bool("compress-input")),
		parameters.CheckForCorrectness(cCtx.Bool("check-input")))
}
