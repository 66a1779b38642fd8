package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStack() *Stack {
	return &Stack{
		Name: "indexer",
		Services: []Service{
			{
				Name:    "ipfs",
				Image:   "ipfs/kubo:v0.17.0",
				Ports:   []string{"5001:5001"},
				Volumes: []string{"data/ipfs:/data/ipfs"},
			},
			{
				Name:        "postgres",
				Image:       "postgres:14",
				Ports:       []string{"5432:5432"},
				Environment: []string{"POSTGRES_USER=indexer"},
				Volumes:     []string{"data/postgres:/var/lib/postgresql/data"},
			},
		},
	}
}

func TestValidateCleanStack(t *testing.T) {
	assert.Empty(t, validStack().Validate())
}

func TestValidateDuplicateName(t *testing.T) {
	s := validStack()
	s.Services = append(s.Services, Service{Name: "ipfs", Image: "ipfs/kubo:v0.17.0"})

	issues := s.Validate()
	require.Len(t, issues, 1)
	assert.Equal(t, "ipfs", issues[0].Service)
	assert.Contains(t, issues[0].Detail, "more than once")
}

func TestValidateHostPortCollision(t *testing.T) {
	s := validStack()
	s.Services = append(s.Services, Service{Name: "pgweb", Image: "sosedoff/pgweb:0.14.1", Ports: []string{"5432:8081"}})

	issues := s.Validate()
	require.Len(t, issues, 1)
	assert.Equal(t, "pgweb", issues[0].Service)
	assert.Contains(t, issues[0].Detail, `host port 5432 already bound by service "postgres"`)
}

func TestValidateVolumePaths(t *testing.T) {
	tests := []struct {
		name   string
		volume string
		detail string
	}{
		{"absolute host path", "/var/data:/data", "must be relative"},
		{"escaping host path", "../outside:/data", "escapes the project directory"},
		{"sneaky escaping host path", "data/../../outside:/data", "escapes the project directory"},
		{"relative container path", "data/x:relative", "must be absolute"},
		{"missing separator", "data-only", "not hostPath:containerPath"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validStack()
			s.Services[0].Volumes = []string{tt.volume}

			issues := s.Validate()
			require.Len(t, issues, 1)
			assert.Contains(t, issues[0].Detail, tt.detail)
		})
	}
}

func TestValidateBadPortSpecs(t *testing.T) {
	for _, spec := range []string{"5001", "abc:5001", "5001:abc", "0:5001", "5001:70000"} {
		s := validStack()
		s.Services[0].Ports = []string{spec}
		assert.NotEmpty(t, s.Validate(), "port spec %q should be rejected", spec)
	}
}

func TestValidateEnvironmentEntries(t *testing.T) {
	s := validStack()
	s.Services[1].Environment = []string{"NO_SEPARATOR", "=empty-key"}

	issues := s.Validate()
	assert.Len(t, issues, 2)
}

// A disabled declaration must have no effect on validation, even when it
// would collide with an active one.
func TestValidateSkipsDisabledServices(t *testing.T) {
	s := validStack()
	s.Services = append(s.Services,
		Service{Name: "postgres", Image: "postgres:15", Ports: []string{"5432:5432"}, Disabled: true},
		Service{Name: "broken", Volumes: []string{"/abs:/data"}, Disabled: true},
	)

	assert.Empty(t, s.Validate())
	assert.Len(t, s.Active(), 2)
}

func TestValidateEmptyNames(t *testing.T) {
	s := validStack()
	s.Name = ""
	s.Services[0].Name = ""

	issues := s.Validate()
	require.Len(t, issues, 2)
}

func TestSplitPort(t *testing.T) {
	host, cont, err := SplitPort("9090:9090")
	require.NoError(t, err)
	assert.Equal(t, 9090, host)
	assert.Equal(t, 9090, cont)

	_, _, err = SplitPort("9090")
	assert.Error(t, err)
}

func TestSplitVolume(t *testing.T) {
	host, cont, err := SplitVolume("grafana/grafana.ini:/etc/grafana/grafana.ini")
	require.NoError(t, err)
	assert.Equal(t, "grafana/grafana.ini", host)
	assert.Equal(t, "/etc/grafana/grafana.ini", cont)

	_, _, err = SplitVolume(":/etc/grafana/grafana.ini")
	assert.Error(t, err)
}
