/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package item

// Traverse walks the dependency tree of it in post-order and emits one
// Record per distinct identity to sink: dependencies before their
// dependents, it last.
//
// An identity is marked visited before the walk descends into it, so a
// dependency shared by several items is emitted once, at its first
// occurrence, and cyclic declarations terminate. The first error returned
// by sink aborts the walk and is returned unchanged.
func Traverse(it Item, sink Sink) error {
	return TraverseAll([]Item{it}, sink)
}

// TraverseAll is Traverse over several roots sharing one visited set. Roots
// already emitted as a dependency of an earlier root are skipped.
func TraverseAll(roots []Item, sink Sink) error {
	w := &walker{visited: make(map[string]bool), sink: sink}
	for _, root := range roots {
		if !w.enter(root) {
			continue
		}
		if err := w.walk(root); err != nil {
			return err
		}
	}
	return nil
}

type walker struct {
	visited map[string]bool
	sink    Sink
}

// enter marks it visited and reports whether it was new.
func (w *walker) enter(it Item) bool {
	id := Identity(it)
	if w.visited[id] {
		return false
	}
	w.visited[id] = true
	return true
}

func (w *walker) walk(it Item) error {
	for _, dep := range it.Dependencies() {
		if !w.enter(dep) {
			continue
		}
		if err := w.walk(dep); err != nil {
			return err
		}
	}
	return w.sink.Emit(NewRecord(it))
}
