/*
 * Copyright 2025 rowkit.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"sort"
	"sync"
)

var defaultRegistry = &modelRegistry{}

// Model registers a struct pointer compatible with Bun for automatic table
// creation. Priority controls ordering; lower values are created first.
type Model struct {
	Instance interface{}
	Priority int
}

type modelRegistry struct {
	mu     sync.RWMutex
	models []Model
}

func (r *modelRegistry) register(m Model) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models = append(r.models, m)
}

func (r *modelRegistry) ordered() []Model {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Model, len(r.models))
	copy(result, r.models)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Priority < result[j].Priority
	})
	return result
}

// RegisterModel adds a model instance to the default registry with the
// given priority.
func RegisterModel(instance interface{}, priority int) {
	defaultRegistry.register(Model{Instance: instance, Priority: priority})
}

// RegisteredModels returns all registered models sorted by ascending
// priority.
func RegisteredModels() []Model {
	return defaultRegistry.ordered()
}

// RegisteredModelInstances returns the registered model instances in
// priority order, for bun.DB.RegisterModel.
func RegisteredModelInstances() []interface{} {
	models := RegisteredModels()
	instances := make([]interface{}, len(models))
	for i, m := range models {
		instances[i] = m.Instance
	}
	return instances
}
