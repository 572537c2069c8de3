// Package domain models thermal comfort assessment on the ASHRAE scale.
//
// # Inputs
//
// An assessment takes four model features, always in this order:
//
//	temperature   air temperature in °C          (surfaces accept -15..50)
//	humidity      relative humidity in %         (surfaces accept 0..100)
//	met           metabolic rate of one activity (MET)
//	clo           summed clothing insulation     (CLO)
//
// Clothing and activities come from fixed catalogs ([Garment], [Activity]).
// Display names are the wire format; [Catalog] resolves them and rejects
// anything else with [ErrInvalidSelection]. Clothing is a set: selecting the
// same garment twice counts it once, and no clothing at all gives 0 CLO.
//
// # Prediction
//
// PMV (Predicted Mean Vote) is produced by an injected [Predictor], usually a
// model artifact loaded once at startup. The domain only fixes the shape:
// four floats in, one float out.
//
// # Sensation scale
//
// PMV is bucketed into seven sensations. Intervals are half-open and ties go
// to the bucket further from neutral:
//
//	pmv >= 3          Hot
//	2 <= pmv < 3      Warm
//	1 <= pmv < 2      Slightly Warm
//	-1 < pmv < 1      Neutral
//	-2 < pmv <= -1    Slightly Cool
//	-3 < pmv <= -2    Cool
//	pmv <= -3         Cold
//
// # Assessment IDs
//
// IDs are truncated SHA-256 hashes of the submitted inputs, so repeated
// submissions of the same form share an ID downstream. See [NewAssessment].
package domain
