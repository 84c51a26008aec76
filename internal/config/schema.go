package config

type Schema struct {
	Version string
	Fields  []FieldSchema
}

type FieldSchema struct {
	Name        string
	Type        string
	Required    bool
	Default     interface{}
	Description string
	Validation  ValidationRule
}

type ValidationRule struct {
	MinValue      interface{}
	MaxValue      interface{}
	AllowedValues []interface{}
	Pattern       string
}

func GetSchema(version string) *Schema {
	switch version {
	case "1.0", "1.1":
		return getV1Schema()
	default:
		return getV1Schema()
	}
}

func getV1Schema() *Schema {
	return &Schema{
		Version: "1.1",
		Fields: []FieldSchema{
			{
				Name:        "name",
				Type:        "string",
				Required:    true,
				Description: "Run name",
			},
			{
				Name:        "version",
				Type:        "string",
				Required:    true,
				Description: "Run descriptor schema version",
			},
			{
				Name:        "target.url",
				Type:        "string",
				Required:    false,
				Description: "Endpoint the built-in HTTP scenario drives",
			},
			{
				Name:        "target.method",
				Type:        "string",
				Required:    false,
				Default:     "GET",
				Description: "HTTP method for the built-in scenario (simcore run issues GET requests only; other values are not used)",
			},
			{
				Name:        "simulation.concurrency",
				Type:        "integer",
				Required:    false,
				Default:     0,
				Description: "Nominal number of virtual users",
				Validation: ValidationRule{
					MinValue: 0,
				},
			},
			{
				Name:        "simulation.users",
				Type:        "integer",
				Required:    false,
				Default:     0,
				Description: "Explicit user count (overrides concurrency-derived ids)",
			},
			{
				Name:        "simulation.requests",
				Type:        "integer",
				Required:    false,
				Default:     0,
				Description: "Stop after this many dispatched requests",
			},
			{
				Name:        "simulation.duration",
				Type:        "duration",
				Required:    false,
				Description: "Stop after this wall-clock duration",
			},
			{
				Name:        "simulation.timeout_per_step",
				Type:        "duration",
				Required:    false,
				Default:     "5s",
				Description: "Per-step deadline",
			},
			{
				Name:        "simulation.ramp",
				Type:        "string",
				Required:    false,
				Description: "Named ramp profile (linear, up-down, instant)",
				Validation: ValidationRule{
					AllowedValues: []interface{}{"", "linear", "up-down", "instant"},
				},
			},
			{
				Name:        "reporting.format",
				Type:        "string",
				Required:    false,
				Default:     "console",
				Description: "Result reporter",
				Validation: ValidationRule{
					AllowedValues: []interface{}{"console", "json", "junit", "markdown", "html"},
				},
			},
			{
				Name:        "reporting.error_file",
				Type:        "string",
				Required:    false,
				Default:     ".simcore/errors.log",
				Description: "Captured step exception log",
			},
			{
				Name:        "reporting.out_file",
				Type:        "string",
				Required:    false,
				Description: "Where to write the reporter's output (stdout if unset)",
			},
			{
				Name:        "metrics.enabled",
				Type:        "boolean",
				Required:    false,
				Default:     false,
				Description: "Serve Prometheus metrics during the run",
			},
			{
				Name:        "metrics.addr",
				Type:        "string",
				Required:    false,
				Default:     ":9090",
				Description: "Metrics listen address",
			},
		},
	}
}

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) Validate(config *Config) error {
	return config.Validate()
}

// Migrator upgrades an older run descriptor in place. There is only one
// schema version so far, so Migrate is a no-op that always reports no
// change was needed.
type Migrator struct{}

func NewMigrator() *Migrator {
	return &Migrator{}
}

func (m *Migrator) Migrate(config *Config) (bool, error) {
	return false, nil
}
