package manifest

// Stack is the root of a berth.yaml manifest.
type Stack struct {
	Name     string    `mapstructure:"name"`
	Version  string    `mapstructure:"version"`
	Services []Service `mapstructure:"services"`
}

// Service declares how to run one externally-built container image.
// All behavior lives inside the image; a declaration only carries what the
// runtime needs to wire it up.
type Service struct {
	Name        string   `mapstructure:"name"`
	Image       string   `mapstructure:"image"`       // e.g., "postgres:14"
	Ports       []string `mapstructure:"ports"`       // e.g., ["5432:5432"] (host:container)
	Command     []string `mapstructure:"command"`     // arguments for the image entrypoint
	Environment []string `mapstructure:"environment"` // e.g., ["POSTGRES_USER=indexer"]
	Volumes     []string `mapstructure:"volumes"`     // e.g., ["data/postgres:/var/lib/postgresql/data"]
	Disabled    bool     `mapstructure:"disabled"`    // parsed but inert when true
}

// Active returns the services that are not disabled, in declaration order.
func (s *Stack) Active() []Service {
	active := make([]Service, 0, len(s.Services))
	for _, svc := range s.Services {
		if !svc.Disabled {
			active = append(active, svc)
		}
	}
	return active
}

// Lookup finds a service by name, disabled or not.
func (s *Stack) Lookup(name string) (Service, bool) {
	for _, svc := range s.Services {
		if svc.Name == name {
			return svc, true
		}
	}
	return Service{}, false
}
