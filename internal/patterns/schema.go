package patterns

const schemaFilename = "lorenz-schema.cue"

// schemaSource constrains setting files. Definitions are closed, so
// misspelled fields inside a setting are rejected.
const schemaSource = `
import "list"

#Pins: [...(0 | 1)] | (string & =~"^[.+]+$")

#Start: [...int & >=0]

#Positions: {
	chi?: #Start
	psi?: #Start
	mu?:  #Start
}

#Setting: {
	description?: string
	chi: [...#Pins] & list.MaxItems(5)
	psi: [...#Pins] & list.MaxItems(5)
	mu: [#Pins, ...#Pins]
	positions?: #Positions
}

setting: [string]: #Setting
`
