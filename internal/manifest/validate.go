package manifest

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Issue describes one structural problem found in a manifest. Validation
// collects every issue instead of failing on the first, so a deployer can
// fix the file in one pass.
type Issue struct {
	Service string
	Detail  string
}

func (i Issue) String() string {
	if i.Service == "" {
		return i.Detail
	}
	return fmt.Sprintf("service %q: %s", i.Service, i.Detail)
}

// Service names end up in container and network names, so they follow the
// same rules Docker applies to its own identifiers.
var namePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`)

// Validate checks the structural invariants of the stack:
// active names are unique, no host port is bound twice, volume host paths
// stay inside the project directory. Disabled declarations are skipped
// entirely, so toggling one never invalidates the rest of the stack.
func (s *Stack) Validate() []Issue {
	var issues []Issue

	if s.Name == "" {
		issues = append(issues, Issue{Detail: "stack name must not be empty"})
	}

	seenNames := map[string]bool{}
	hostPorts := map[int]string{}

	for _, svc := range s.Services {
		if svc.Disabled {
			continue
		}

		if svc.Name == "" {
			issues = append(issues, Issue{Detail: "service name must not be empty"})
			continue
		}
		if !namePattern.MatchString(svc.Name) {
			issues = append(issues, Issue{Service: svc.Name, Detail: "name contains characters not allowed in container names"})
		}
		if seenNames[svc.Name] {
			issues = append(issues, Issue{Service: svc.Name, Detail: "declared more than once"})
		}
		seenNames[svc.Name] = true

		if svc.Image == "" {
			issues = append(issues, Issue{Service: svc.Name, Detail: "image must not be empty"})
		}

		for _, spec := range svc.Ports {
			hostPort, _, err := SplitPort(spec)
			if err != nil {
				issues = append(issues, Issue{Service: svc.Name, Detail: err.Error()})
				continue
			}
			if owner, taken := hostPorts[hostPort]; taken {
				issues = append(issues, Issue{Service: svc.Name, Detail: fmt.Sprintf("host port %d already bound by service %q", hostPort, owner)})
				continue
			}
			hostPorts[hostPort] = svc.Name
		}

		for _, spec := range svc.Volumes {
			hostPath, containerPath, err := SplitVolume(spec)
			if err != nil {
				issues = append(issues, Issue{Service: svc.Name, Detail: err.Error()})
				continue
			}
			if filepath.IsAbs(hostPath) {
				issues = append(issues, Issue{Service: svc.Name, Detail: fmt.Sprintf("volume host path %q must be relative to the project directory", hostPath)})
			} else if escapesProject(hostPath) {
				issues = append(issues, Issue{Service: svc.Name, Detail: fmt.Sprintf("volume host path %q escapes the project directory", hostPath)})
			}
			if !strings.HasPrefix(containerPath, "/") {
				issues = append(issues, Issue{Service: svc.Name, Detail: fmt.Sprintf("volume container path %q must be absolute", containerPath)})
			}
		}

		for _, env := range svc.Environment {
			key, _, found := strings.Cut(env, "=")
			if !found || key == "" {
				issues = append(issues, Issue{Service: svc.Name, Detail: fmt.Sprintf("environment entry %q is not KEY=value", env)})
			}
		}
	}

	return issues
}

// SplitPort parses a "host:container" port binding.
func SplitPort(spec string) (hostPort, containerPort int, err error) {
	host, cont, found := strings.Cut(spec, ":")
	if !found {
		return 0, 0, fmt.Errorf("port binding %q is not host:container", spec)
	}
	hostPort, err = parsePort(host)
	if err != nil {
		return 0, 0, fmt.Errorf("port binding %q: %w", spec, err)
	}
	containerPort, err = parsePort(cont)
	if err != nil {
		return 0, 0, fmt.Errorf("port binding %q: %w", spec, err)
	}
	return hostPort, containerPort, nil
}

func parsePort(s string) (int, error) {
	port, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a port number", s)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port %d is out of range", port)
	}
	return port, nil
}

// SplitVolume parses a "hostPath:containerPath" volume binding.
func SplitVolume(spec string) (hostPath, containerPath string, err error) {
	hostPath, containerPath, found := strings.Cut(spec, ":")
	if !found || hostPath == "" || containerPath == "" {
		return "", "", fmt.Errorf("volume binding %q is not hostPath:containerPath", spec)
	}
	return hostPath, containerPath, nil
}

func escapesProject(hostPath string) bool {
	cleaned := path.Clean(filepath.ToSlash(hostPath))
	return cleaned == ".." || strings.HasPrefix(cleaned, "../")
}
