package magcube

var (
	Debug    = false // set to true for verbose debug output and per-chunk stats
	Progress = false // set to true to log evaluation progress per chunk
	// Compile time checks to ensure that the model interface is implemented by all required types
	_ Model = (*MLP)(nil)
	_ Model = (*PotentialModel)(nil)
	_ Model = (*FuncModel)(nil)
	// and that the domain set stays closed
	_ Domain = Cube{}
	_ Domain = Shell{}
	_ Domain = Region{}
	_ Domain = Points{}
)
