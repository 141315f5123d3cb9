package cmd

import (
	"maps"

	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the pec command line for shell completion.
func Completion() *complete.Command {
	source := map[string]complete.Predictor{"data": predict.Files("*.xlsx")}
	with := func(flags map[string]complete.Predictor) map[string]complete.Predictor {
		maps.Copy(flags, source)
		return flags
	}
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"run": {Flags: with(map[string]complete.Predictor{
				"out":    predict.Dirs("*"),
				"format": predict.Set{"csv", "xlsx"},
			})},
			"audit": {Flags: with(map[string]complete.Predictor{
				"style": predict.Set{"dark", "light", "notty", "ascii", "dracula", "pink", "tokyo-night"},
				"width": predict.Nothing,
			})},
			"describe": {Flags: with(map[string]complete.Predictor{
				"context": predict.Nothing,
				"o":       predict.Files("*.md"),
			})},
			"topic": {
				Args:  predict.Set{"*", "workbook", "config", "audit", "extensions"},
				Flags: map[string]complete.Predictor{"raw": predict.Nothing},
			},
			"help":     {},
			"flags":    {},
			"commands": {},
		},
		Flags: map[string]complete.Predictor{
			"config":    predict.Files("*"),
			"env-file":  predict.Files("*"),
			"log-level": predict.Set{"debug", "info", "warn", "error"},
		},
	}
}
