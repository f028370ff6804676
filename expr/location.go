// Copyright 2026 The exprtree Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package expr

import "fmt"

// Location identifies a storage location: a register or flag index, plus an
// optional version number assigned by SSA-style renaming.
//
// Locations are compared with ==.
type Location struct {
	Reg       int
	Version   int
	Versioned bool
}

// Reg returns the unversioned location of register idx.
func Reg(idx int) Location {
	return Location{Reg: idx}
}

// At returns a copy of l with the given version.
func (l Location) At(version int) Location {
	l.Version = version
	l.Versioned = true
	return l
}

// Unversioned returns a copy of l with its version stripped.
func (l Location) Unversioned() Location {
	return Location{Reg: l.Reg}
}

// GoString implements [fmt.GoStringer].
func (l Location) GoString() string {
	if l.Versioned {
		return fmt.Sprintf("#%d@%d", l.Reg, l.Version)
	}
	return fmt.Sprintf("#%d", l.Reg)
}

// Equal returns whether l and other name the same location. The version is
// only compared when both are versioned.
func (l Location) Equal(other Location) bool {
	if l.Reg != other.Reg || l.Versioned != other.Versioned {
		return false
	}
	return !l.Versioned || l.Version == other.Version
}
