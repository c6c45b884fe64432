package energy

// overweightBMI is the BMI threshold above which Mifflin-St Jeor is preferred
// over the population fallback.
const overweightBMI = 25

// SelectEquation deterministically picks the most appropriate energy equation
// for the available data. The branch order encodes a clinical precedence,
// composition-aware methods before population-level ones, and must not be
// reordered:
//
//  1. Athlete with known fat-free mass: Cunningham.
//  2. Any body-composition data: Katch-McArdle.
//  3. BMI >= 25: Mifflin-St Jeor.
//  4. Otherwise: FAO/WHO/UNU weight-only fallback.
//
// There is no error path; absence of body-composition data degrades accuracy,
// it never fails.
func SelectEquation(in Inputs) EquationID {
	_, ffmKnown := in.FatFreeMass()

	if (in.IsAthlete || in.ActivityLevel == ActivityAthlete) && ffmKnown {
		return EquationCunningham1980
	}
	if ffmKnown {
		return EquationKatchMcArdle1996
	}
	if in.BMI() >= overweightBMI {
		return EquationMifflinStJeor
	}
	return EquationFAOWHOUNU2004
}
