package domain

// Reading is one raw acquisition from the INA219.
type Reading struct {
	BusVoltage   float64 // volts at the load-side bus terminal
	ShuntCurrent float64 // amps inferred from the shunt drop
	Power        float64 // watts
}

// Sample is one fully derived row of the measurement stream.
type Sample struct {
	Timestamp   float64 // unix seconds, fractional
	Elapsed     float64 // seconds since the priming read
	Reading     Reading
	Energy      float64 // energy contributed by this sample, in the run's unit
	TotalEnergy float64 // running sum across the run
	Correlated  string  // raw serial line that triggered this sample, if any
}
