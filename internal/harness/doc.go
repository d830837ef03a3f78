// Package harness runs machine scenarios written in YAML and checks them
// against assertions and golden traces.
//
// A scenario names a setting file, the text to feed and a short program of
// machine operations:
//
//	name: bletchley_park
//	description: training key from its file start
//	patterns: ../patterns/training.cue
//	setting: training
//	input: BLETCHLEY99PARK
//	steps:
//	  - op: feed
//	  - op: backstep
//	    count: 15
//	assertions:
//	  - type: output_equals
//	    expect: /FKJXRPAE+Q9MMC
//	  - type: round_trip
//
// Every fed symbol is traced with the key it met, the motor reading and the
// wheel positions before the step. Traces are rendered as canonical JSON, so
// golden files compare byte for byte.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/bletchley_park.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, msg := range result.Errors {
//	    log.Println(msg)
//	}
package harness
