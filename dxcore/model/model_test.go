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

package model_test

import (
	"errors"
	"strings"
	"testing"

	dxerrors "dirpx.dev/dxcap/dxcore/errors"
	"dirpx.dev/dxcap/dxcore/model"
	"dirpx.dev/dxcap/dxcore/model/capability"
)

func TestValidateAll(t *testing.T) {
	tests := []struct {
		name     string
		models   []*capability.Requirement
		wantErr  bool
		contains []string
	}{
		{"nil slice", nil, false, nil},
		{"empty slice", []*capability.Requirement{}, false, nil},
		{
			"all valid",
			[]*capability.Requirement{
				{Name: "A", Min: 1, Max: 10},
				{Name: "B", Min: 3, Max: 3},
			},
			false, nil,
		},
		{
			"one invalid",
			[]*capability.Requirement{
				{Name: "A", Min: 1, Max: 10},
				{Name: "B", Min: 4, Max: 3},
			},
			true, []string{"model[1] (Requirement)"},
		},
		{
			"every failure reported",
			[]*capability.Requirement{
				{Min: 1, Max: 2},
				{Name: "A", Min: 1, Max: 2},
				{Name: "B", Min: 9, Max: 1},
			},
			true, []string{"model[0] (Requirement)", "model[2] (Requirement)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := model.ValidateAll(tt.models)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateAll() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.contains {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("ValidateAll() error = %q, want it to contain %q", err, want)
				}
			}
		})
	}
}

func TestMustValidate(t *testing.T) {
	c := &capability.Capability{Name: "A", Value: 5}
	if got := model.MustValidate(c); got != c {
		t.Errorf("MustValidate() = %p, want %p", got, c)
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("MustValidate() did not panic on invalid model")
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, "Capability") {
			t.Errorf("panic = %v, want message naming Capability", r)
		}
	}()
	model.MustValidate(&capability.Capability{})
}

func TestToJSON_FromJSON(t *testing.T) {
	in := &capability.Requirement{Name: "A", Min: 1, Max: 10}

	data, err := model.ToJSON(in)
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	if string(data) != `"A(1-10)"` {
		t.Errorf("ToJSON() = %s", data)
	}

	var out *capability.Requirement
	if err := model.FromJSON(data, &out); err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	if !out.Equal(*in) {
		t.Errorf("FromJSON() = %v, want %v", out, in)
	}

	if _, err := model.ToJSON(&capability.Requirement{Name: "A", Min: 2, Max: 1}); err == nil {
		t.Error("ToJSON() on invalid model succeeded")
	}
	if err := model.FromJSON([]byte(`"A(1-"`), &out); err == nil {
		t.Error("FromJSON() on malformed input succeeded")
	}
}

func TestToYAML_FromYAML(t *testing.T) {
	in := &capability.Capability{Name: "C", Value: 2}

	data, err := model.ToYAML(in)
	if err != nil {
		t.Fatalf("ToYAML() error = %v", err)
	}
	if strings.TrimSpace(string(data)) != "C2" {
		t.Errorf("ToYAML() = %q", data)
	}

	var out *capability.Capability
	if err := model.FromYAML(data, &out); err != nil {
		t.Fatalf("FromYAML() error = %v", err)
	}
	if !out.Equal(*in) {
		t.Errorf("FromYAML() = %v, want %v", out, in)
	}

	if _, err := model.ToYAML(&capability.Capability{}); err == nil {
		t.Error("ToYAML() on zero capability succeeded")
	}
}

func TestEqual(t *testing.T) {
	a := &capability.Capability{Name: "A", Value: 5}
	b := &capability.Capability{Name: "A", Value: 5}
	c := &capability.Capability{Name: "A", Value: 6}

	if !model.Equal(a, b) {
		t.Error("Equal(A5, A5) = false")
	}
	if model.Equal(a, c) {
		t.Error("Equal(A5, A6) = true")
	}
	if model.Equal(&capability.Capability{}, &capability.Capability{}) {
		t.Error("Equal() on values that fail to encode = true")
	}
}

func TestFromJSONAndYAML_NullDocument(t *testing.T) {
	inputs := []struct {
		name   string
		decode func([]byte, **capability.Capability) error
		data   string
	}{
		{"json null", model.FromJSON[*capability.Capability], "null"},
		{"yaml null", model.FromYAML[*capability.Capability], "null"},
		{"yaml tilde", model.FromYAML[*capability.Capability], "~"},
	}

	for _, tt := range inputs {
		t.Run(tt.name, func(t *testing.T) {
			c := &capability.Capability{Name: "A", Value: 1}
			err := tt.decode([]byte(tt.data), &c)
			if err == nil {
				t.Fatal("decoding a null document succeeded")
			}
			var verr *dxerrors.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error = %v, want a *ValidationError", err)
			}
			if verr.Type != "capability.Capability" || verr.Reason != "document is null" {
				t.Errorf("ValidationError = %+v", verr)
			}
		})
	}
}

func indexOf[T any](items []T, want model.Comparable[T]) int {
	for i, it := range items {
		if want.Equal(it) {
			return i
		}
	}
	return -1
}

func TestComparable(t *testing.T) {
	caps := []capability.Capability{capability.MustParseCapability("A5"), capability.MustParseCapability("C2")}
	if got := indexOf(caps, capability.MustParseCapability("C2")); got != 1 {
		t.Errorf("indexOf(C2) = %d, want 1", got)
	}

	reqs := capability.MustParseRequirements("A(1-10), B(3)")
	if got := indexOf([]capability.Requirement(reqs), capability.MustParseRequirement("B(3-3)")); got != 1 {
		t.Errorf("indexOf(B(3-3)) = %d, want 1", got)
	}
	if got := indexOf([]capability.Requirement(reqs), capability.MustParseRequirement("A(1-9)")); got != -1 {
		t.Errorf("indexOf(A(1-9)) = %d, want -1", got)
	}
}
