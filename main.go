package main

import (
	"os"

	"github.com/bnbchain/ptau-setup/parameters"
	"github.com/consensys/gnark/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	powerFlag := &cli.IntFlag{
		Name:    "power",
		Usage:   "supports circuits of up to 2^`POWER` constraints",
		EnvVars: []string{"PTAU_POWER"},
		Value:   parameters.DefaultPower,
	}
	batchFlag := &cli.IntFlag{
		Name:    "batch-size",
		Usage:   "maximum number of points held in memory per section",
		EnvVars: []string{"PTAU_BATCH_SIZE"},
		Value:   parameters.DefaultBatchSize,
	}
	compressInputFlag := &cli.BoolFlag{
		Name:  "compress-input",
		Usage: "the challenge is compressed",
	}
	compressOutputFlag := &cli.BoolFlag{
		Name:  "compress-output",
		Usage: "write a compressed response",
		Value: true,
	}
	checkInputFlag := &cli.BoolFlag{
		Name:  "check-input",
		Usage: "check that every point of the challenge is in the prime order subgroup",
		Value: true,
	}

	app := &cli.App{
		Name:      "ptau-setup",
		Usage:     "Use this tool to run a powers of tau ceremony over BLS12-381",
		UsageText: "ptau-setup [global options] command [arguments...]",
		Flags: []cli.Flag{
			powerFlag,
			batchFlag,
			&cli.BoolFlag{Name: "verbose", Usage: "log the progress of every chunk"},
			&cli.BoolFlag{Name: "quiet", Usage: "disable logging"},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:        "new",
				Usage:       "new <challenge>",
				Description: "write the genesis challenge, where τ = α = β = 1",
				Aliases:     []string{"n"},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "compress", Usage: "write a compressed challenge"},
				},
				Action: initialize,
			},
			{
				Name:        "contribute",
				Usage:       "contribute <challenge> <response>",
				Description: "contribute randomness from the system and the user to a challenge",
				Aliases:     []string{"c"},
				Flags: []cli.Flag{
					compressInputFlag,
					compressOutputFlag,
					checkInputFlag,
					&cli.StringFlag{Name: "entropy", Usage: "random text mixed with the system randomness, prompted if empty"},
				},
				Action: contribute,
			},
			{
				Name:        "beacon",
				Usage:       "beacon <challenge> <response>",
				Description: "contribute randomness derived from a public beacon",
				Aliases:     []string{"b"},
				Flags: []cli.Flag{
					compressInputFlag,
					compressOutputFlag,
					checkInputFlag,
					&cli.StringFlag{Name: "beacon-hash", Usage: "hex encoded 32-byte beacon value", Required: true},
					&cli.UintFlag{Name: "beacon-iterations", Usage: "the beacon is hashed 2^`N` times", Value: defaultBeaconIterations},
				},
				Action: beacon,
			},
			{
				Name:        "verify",
				Usage:       "verify <challenge> <response> <new_challenge>",
				Description: "verify a response and write the next challenge",
				Aliases:     []string{"v"},
				Flags: []cli.Flag{
					compressInputFlag,
					compressOutputFlag,
					checkInputFlag,
				},
				Action: verify,
			},
			{
				Name:        "extract",
				Usage:       "extract <challenge> <output>",
				Description: "extract the first powers of the final accumulator",
				Aliases:     []string{"e"},
				Flags: []cli.Flag{
					compressInputFlag,
					checkInputFlag,
					&cli.IntFlag{Name: "count", Usage: "number of powers to extract", Value: 1 << 10},
				},
				Action: extract,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log := logger.Logger()
		log.Error().Err(err).Msg("ptau-setup failed")
		os.Exit(1)
	}
}
