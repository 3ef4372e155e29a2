package core

import (
	"context"
	"fmt"
	"time"

	docker "github.com/fsouza/go-dockerclient"
)

// composeProjectLabel is the label the compose CLI stamps on every
// container it creates, keyed by project name (spec.md §4.5).
const composeProjectLabel = "com.docker.compose.project"

// ContainerLifecycle is the job-scoped Container Lifecycle component
// (spec.md §4.5): network create/destroy and container enumeration by
// compose-project label or network attachment, narrowed from the
// teacher's broader DockerOperations/ImageOperations/ExecOperations
// surface down to the five operations this spec actually needs (see
// DESIGN.md).
type ContainerLifecycle struct {
	client *docker.Client
	logger Logger
}

// NewContainerLifecycle wraps a Docker API client. Uses
// docker.NewClientFromEnv, the same bootstrap the teacher's daemon
// used against DOCKER_HOST/DOCKER_CERT_PATH.
func NewContainerLifecycle(logger Logger) (*ContainerLifecycle, error) {
	client, err := docker.NewClientFromEnv()
	if err != nil {
		return nil, fmt.Errorf("connect to docker daemon: %w", err)
	}
	return &ContainerLifecycle{client: client, logger: logger}, nil
}

// CreateNetwork creates a user-defined bridge network. Best-effort:
// an "already exists" error from the daemon is swallowed (spec.md
// §4.5, §7 NetworkCreateFailed).
func (cl *ContainerLifecycle) CreateNetwork(ctx context.Context, name string) error {
	_, err := cl.client.CreateNetwork(docker.CreateNetworkOptions{
		Context: ctx,
		Name:    name,
		Driver:  "bridge",
	})
	if err != nil {
		if cl.logger != nil {
			cl.logger.Warningf("%v (continuing, best-effort)", WrapNetworkCreateError(name, err))
		}
		return nil
	}
	if cl.logger != nil {
		cl.logger.Noticef("created network %s", name)
	}
	return nil
}

// DestroyNetwork removes a network by name. Best-effort: a "not
// found" or "has active endpoints" error is logged and swallowed.
func (cl *ContainerLifecycle) DestroyNetwork(ctx context.Context, name string) {
	id, err := cl.findNetworkIDByName(ctx, name)
	if err != nil || id == "" {
		return
	}
	if err := cl.client.RemoveNetwork(id); err != nil {
		if cl.logger != nil {
			cl.logger.Warningf("%v", WrapDockerError("remove network", name, err))
		}
		return
	}
	if cl.logger != nil {
		cl.logger.Noticef("removed network %s", name)
	}
}

func (cl *ContainerLifecycle) findNetworkIDByName(ctx context.Context, name string) (string, error) {
	filter := docker.NetworkFilterOpts{"name": map[string]bool{name: true}}
	networks, err := cl.client.FilteredListNetworks(filter)
	if err != nil {
		return "", err
	}
	for _, n := range networks {
		if n.Name == name {
			return n.ID, nil
		}
	}
	return "", nil
}

// RemoveProjectContainers force-removes every container (running or
// stopped) labeled with the given compose project prefix (spec.md
// §4.5). Each removal is independent; one failure does not stop the
// others.
func (cl *ContainerLifecycle) RemoveProjectContainers(ctx context.Context, composePrefix string) {
	containers, err := cl.client.ListContainers(docker.ListContainersOptions{
		Context: ctx,
		All:     true,
		Filters: map[string][]string{
			"label": {composeProjectLabel + "=" + composePrefix},
		},
	})
	if err != nil {
		if cl.logger != nil {
			cl.logger.Warningf("%v", WrapDockerError("list containers for project", composePrefix, err))
		}
		return
	}
	cl.forceRemoveAll(containers)
}

// RemoveContainersOnNetwork force-removes every container currently
// attached to the named network, catching ad-hoc containers a
// compose-down did not manage (spec.md §4.5).
func (cl *ContainerLifecycle) RemoveContainersOnNetwork(ctx context.Context, network string) {
	containers, err := cl.client.ListContainers(docker.ListContainersOptions{
		Context: ctx,
		All:     true,
		Filters: map[string][]string{
			"network": {network},
		},
	})
	if err != nil {
		if cl.logger != nil {
			cl.logger.Warningf("%v", WrapDockerError("list containers on network", network, err))
		}
		return
	}
	cl.forceRemoveAll(containers)
}

func (cl *ContainerLifecycle) forceRemoveAll(containers []docker.APIContainers) {
	for _, c := range containers {
		err := cl.client.RemoveContainer(docker.RemoveContainerOptions{
			ID:    c.ID,
			Force: true,
		})
		if err != nil && cl.logger != nil {
			cl.logger.Warningf("%v", WrapDockerError("remove container", c.ID, err))
		}
	}
}

// dockerTimeout bounds each `docker compose down` invocation (see
// teardownOne in compose.go). The Docker API calls in this file run
// under the caller's context and set no deadline of their own.
const dockerTimeout = 60 * time.Second
