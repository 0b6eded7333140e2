// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package duplex

import "code.hybscloud.com/atomix"

// DefaultInstances is the registry table size used when NewRegistry is
// passed zero.
const DefaultInstances = 255

// Registry is a fixed table of channel instances addressed by a small
// integer identifier, the analog of a minor-device table. Instances are
// created up front with empty buffers and zero open count; their buffers
// are allocated lazily on first connect.
type Registry struct {
	instances []*Instance
	closed    atomix.Uint32
}

// NewRegistry creates a registry of the given size with the given
// per-direction buffer capacity for every instance (0 selects
// DefaultInstances and DefaultBufferSize respectively).
// Panics on a negative size or a capacity below the sentinel minimum.
func NewRegistry(instances, bufferSize int) *Registry {
	if instances == 0 {
		instances = DefaultInstances
	}
	if instances < 0 {
		panic("duplex: negative registry size")
	}
	if bufferSize == 0 {
		bufferSize = DefaultBufferSize
	}
	if bufferSize < minBufferSize {
		panic("duplex: buffer size must be at least 2")
	}
	r := &Registry{instances: make([]*Instance, instances)}
	for i := range r.instances {
		r.instances[i] = &Instance{id: i, capacity: bufferSize}
	}
	return r
}

// Len returns the number of instances in the table.
func (r *Registry) Len() int {
	return len(r.instances)
}

// Instance returns the instance with the given identifier.
// Returns ErrNoInstance for identifiers outside the table and
// ErrRegistryClosed after Close.
func (r *Registry) Instance(id int) (*Instance, error) {
	if r.closed.Load() != 0 {
		return nil, ErrRegistryClosed
	}
	if id < 0 || id >= len(r.instances) {
		return nil, ErrNoInstance
	}
	return r.instances[id], nil
}

// Connect attaches a new endpoint to the identified instance.
func (r *Registry) Connect(id int, mode AccessMode) (*Endpoint, error) {
	inst, err := r.Instance(id)
	if err != nil {
		return nil, err
	}
	return inst.Connect(mode)
}

// Close tears the registry down: lookups and connects fail afterwards.
// Endpoints already attached keep their instance alive until they drop it;
// buffer storage is reclaimed with the instances.
func (r *Registry) Close() {
	r.closed.Store(1)
}
