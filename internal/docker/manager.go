package docker

import (
	"context"
	"fmt"
	"io"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/api/types/strslice"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/docker/go-connections/nat"

	"github.com/berth-dev/berth/internal/logging"
)

var log = logging.For("docker")

const (
	labelProject = "berth.project"
	labelService = "berth.service"
	labelManaged = "berth.managed"
)

// Manager handles all interactions with the Docker daemon.
type Manager struct {
	cli *client.Client
}

// NewManager connects to the local daemon, honoring DOCKER_HOST and friends.
func NewManager() (*Manager, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	return &Manager{cli: cli}, nil
}

// ContainerSpec is everything the daemon needs to run one service of a stack.
type ContainerSpec struct {
	Project string
	Service string
	Image   string
	Network string
	Ports   []string // "host:container"
	Command []string
	Env     []string // "KEY=value"
	Binds   []string // "absoluteHostPath:containerPath"
}

// ContainerName returns the daemon-side name for a stack service.
func ContainerName(project, service string) string {
	return fmt.Sprintf("berth-%s-%s", project, service)
}

// NetworkName returns the bridge network name for a stack.
func NetworkName(project string) string {
	return fmt.Sprintf("berth-%s", project)
}

// EnsureImage pulls the image. The pull stream must be drained or the
// daemon may cancel the download.
func (m *Manager) EnsureImage(ctx context.Context, imageName string) error {
	log.WithField("image", imageName).Info("pulling image")

	reader, err := m.cli.ImagePull(ctx, imageName, types.ImagePullOptions{})
	if err != nil {
		return fmt.Errorf("failed to pull image %s: %w", imageName, err)
	}
	defer reader.Close()

	if _, err := io.Copy(io.Discard, reader); err != nil {
		return fmt.Errorf("error reading pull output for %s: %w", imageName, err)
	}
	return nil
}

// EnsureNetwork creates the stack's bridge network if it doesn't exist.
func (m *Manager) EnsureNetwork(ctx context.Context, networkName string) error {
	networks, err := m.cli.NetworkList(ctx, types.NetworkListOptions{})
	if err != nil {
		return fmt.Errorf("failed to list networks: %w", err)
	}
	for _, net := range networks {
		if net.Name == networkName {
			log.WithField("network", networkName).Debug("network already exists")
			return nil
		}
	}

	log.WithField("network", networkName).Info("creating network")
	if _, err := m.cli.NetworkCreate(ctx, networkName, types.NetworkCreate{
		Driver: "bridge",
	}); err != nil {
		return fmt.Errorf("failed to create network %s: %w", networkName, err)
	}
	return nil
}

// StartContainer creates and starts one service container. An existing
// container with the same name is removed first, so StartContainer is safe
// to run over a half-up stack.
func (m *Manager) StartContainer(ctx context.Context, spec ContainerSpec) error {
	containerName := ContainerName(spec.Project, spec.Service)

	exposedPorts, portBindings, err := portMaps(spec.Ports)
	if err != nil {
		return fmt.Errorf("service %s: %w", spec.Service, err)
	}

	config := &container.Config{
		Image:        spec.Image,
		Cmd:          strslice.StrSlice(spec.Command),
		Env:          spec.Env,
		ExposedPorts: exposedPorts,
		Labels: map[string]string{
			labelProject: spec.Project,
			labelService: spec.Service,
			labelManaged: "true",
		},
	}
	hostConfig := &container.HostConfig{
		PortBindings: portBindings,
		Binds:        spec.Binds,
	}
	networkConfig := &network.NetworkingConfig{
		EndpointsConfig: map[string]*network.EndpointSettings{
			spec.Network: {
				// The declaration name doubles as a network alias so
				// services reach each other by it.
				Aliases: []string{spec.Service},
			},
		},
	}

	// Leftovers from a previous run would make the create fail on the name.
	_ = m.cli.ContainerRemove(ctx, containerName, container.RemoveOptions{Force: true})

	log.WithField("container", containerName).Debug("creating container")
	resp, err := m.cli.ContainerCreate(ctx, config, hostConfig, networkConfig, nil, containerName)
	if err != nil {
		return fmt.Errorf("failed to create container %s: %w", containerName, err)
	}

	log.WithField("container", containerName).Info("starting container")
	if err := m.cli.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		return fmt.Errorf("failed to start container %s: %w", containerName, err)
	}
	return nil
}

// portMaps translates "host:container" bindings into the daemon's format.
func portMaps(ports []string) (nat.PortSet, nat.PortMap, error) {
	exposedPorts := nat.PortSet{}
	portBindings := nat.PortMap{}

	for _, portMapping := range ports {
		mappings, err := nat.ParsePortSpec(portMapping)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid port mapping %s: %w", portMapping, err)
		}
		for _, pm := range mappings {
			exposedPorts[pm.Port] = struct{}{}
			portBindings[pm.Port] = append(portBindings[pm.Port], nat.PortBinding{
				HostIP:   "0.0.0.0",
				HostPort: pm.Binding.HostPort,
			})
		}
	}
	return exposedPorts, portBindings, nil
}

// ListContainers returns the containers belonging to a stack, running or not.
func (m *Manager) ListContainers(ctx context.Context, projectName string) ([]types.Container, error) {
	filterArgs := filters.NewArgs()
	filterArgs.Add("label", fmt.Sprintf("%s=%s", labelProject, projectName))

	return m.cli.ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: filterArgs,
	})
}

// StreamLogs copies a service container's output to w, demultiplexing the
// daemon's stdout/stderr framing.
func (m *Manager) StreamLogs(ctx context.Context, projectName, serviceName string, follow bool, w io.Writer) error {
	containerName := ContainerName(projectName, serviceName)

	reader, err := m.cli.ContainerLogs(ctx, containerName, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Follow:     follow,
		Tail:       "100",
	})
	if err != nil {
		return fmt.Errorf("failed to read logs for %s: %w", containerName, err)
	}
	defer reader.Close()

	if _, err := stdcopy.StdCopy(w, w, reader); err != nil && err != io.EOF {
		return fmt.Errorf("error streaming logs for %s: %w", containerName, err)
	}
	return nil
}

// StopAndRemoveContainer stops and deletes a service container. Volume data
// on the host is kept.
func (m *Manager) StopAndRemoveContainer(ctx context.Context, projectName, serviceName string) error {
	containerName := ContainerName(projectName, serviceName)

	log.WithField("container", containerName).Info("stopping container")
	if err := m.cli.ContainerStop(ctx, containerName, container.StopOptions{}); err != nil {
		log.WithField("container", containerName).WithField("error", err).Warn("failed to stop container, may not be running")
	}

	log.WithField("container", containerName).Debug("removing container")
	if err := m.cli.ContainerRemove(ctx, containerName, container.RemoveOptions{
		RemoveVolumes: false,
		Force:         true,
	}); err != nil {
		return fmt.Errorf("failed to remove %s: %w", containerName, err)
	}
	return nil
}

// RemoveNetwork deletes the stack network.
func (m *Manager) RemoveNetwork(ctx context.Context, networkName string) error {
	log.WithField("network", networkName).Info("removing network")
	return m.cli.NetworkRemove(ctx, networkName)
}
