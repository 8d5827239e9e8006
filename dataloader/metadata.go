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

package dataloader

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"

	"github.com/rowkit/rowkit/types"
)

// metadata maps grid-side property names to backend columns using the Bun
// table definition of the entity. A property may be the Go field name, the
// column name itself, or the field's json tag.
type metadata struct {
	table   *schema.Table
	columns map[string]string
}

func newMetadata[T any](db *bun.DB) *metadata {
	typ := reflect.TypeFor[T]()
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	table := db.Table(typ)

	columns := make(map[string]string, len(table.Fields)*3)
	for _, f := range table.Fields {
		columns[f.Name] = f.Name
		columns[f.GoName] = f.Name
		if tag, ok := f.StructField.Tag.Lookup("json"); ok {
			name, _, _ := strings.Cut(tag, ",")
			if name != "" && name != "-" {
				columns[name] = f.Name
			}
		}
	}
	return &metadata{table: table, columns: columns}
}

func (m *metadata) column(property string) (string, error) {
	col, ok := m.columns[property]
	if !ok {
		return "", fmt.Errorf("unknown sort property %q for %s", property, m.table.TypeName)
	}
	return col, nil
}

// hasColumn reports whether col is a real column of the entity's table.
func (m *metadata) hasColumn(col string) bool {
	_, ok := m.table.FieldMap[col]
	return ok
}

// translateSorts converts grid sort declarations into backend sorts.
func (m *metadata) translateSorts(orders []SortOrder) ([]types.Sort, error) {
	sorts := make([]types.Sort, len(orders))
	for i, o := range orders {
		col, err := m.column(o.Property)
		if err != nil {
			return nil, err
		}
		sorts[i] = types.Sort{Column: col, Desc: o.Desc}
	}
	return sorts, nil
}

// pkResolver returns the default item identity function: the entity's
// primary key, or the item itself for keyless entities.
func pkResolver[T any](m *metadata) IDResolver[T] {
	return func(item T) interface{} {
		pks := m.table.PKs
		if len(pks) == 0 {
			return item
		}
		v := reflect.Indirect(reflect.ValueOf(item))
		if len(pks) == 1 {
			return pks[0].Value(v).Interface()
		}
		ids := make([]interface{}, len(pks))
		for i, pk := range pks {
			ids[i] = pk.Value(v).Interface()
		}
		return ids
	}
}
