package scenario

// Pointer fields distinguish "absent" from an explicit zero so that a file
// only needs to state what differs from Default.

type yamlScenario struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Drug        string          `yaml:"drug"`
	Structural  *yamlStructural `yaml:"structural"`
	Time        *yamlTime       `yaml:"time"`
	Absorption  *yamlAbsorption `yaml:"absorption"`
	Regimen     *yamlRegimen    `yaml:"regimen"`
	Window      *yamlWindow     `yaml:"window"`
	Solver      *yamlSolver     `yaml:"solver"`
}

type yamlStructural struct {
	Dose      *float64 `yaml:"dose"`
	Volume    *float64 `yaml:"volume"`
	Clearance *float64 `yaml:"clearance"`
}

type yamlTime struct {
	End    *float64 `yaml:"end"`
	Points *int     `yaml:"points"`
}

type yamlAbsorption struct {
	Dose    *float64 `yaml:"dose"`
	Ka      *float64 `yaml:"ka"`
	Ke      *float64 `yaml:"ke"`
	Km      *float64 `yaml:"km"`
	Lag     *float64 `yaml:"lag"`
	Transit *int     `yaml:"transit"`
}

type yamlRegimen struct {
	Dose      *float64 `yaml:"dose"`
	FirstDose *float64 `yaml:"first_dose"`
	Interval  *float64 `yaml:"interval"`
	Count     *int     `yaml:"count"`
	Points    *int     `yaml:"points"`
}

type yamlWindow struct {
	MEC *float64 `yaml:"mec"`
	MTC *float64 `yaml:"mtc"`
}

type yamlSolver struct {
	Method  *string  `yaml:"method"`
	RelTol  *float64 `yaml:"rtol"`
	AbsTol  *float64 `yaml:"atol"`
	Step    *float64 `yaml:"step"`
	MaxStep *float64 `yaml:"max_step"`
}
