// Package comfort orchestrates a single thermal comfort assessment.
//
// The HTTP form, JSON API, terminal form and CLI all call Service.Assess with
// the raw selection. The service enforces the environmental bounds, resolves
// clothing and activity through the catalog, asks the predictor for a PMV,
// rejects non-finite results and classifies the rest. Completed assessments
// are optionally handed to a Publisher; a publish failure is logged and the
// assessment is still returned.
package comfort
