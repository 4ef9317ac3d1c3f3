package knowledge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/lcr/internal/adapters/knowledge"
)

func TestDeepMerge(t *testing.T) {
	base := map[string]any{
		"numpy": map[string]any{"pip": []any{"numpy"}, "apt": []any{}},
		"_meta": map[string]any{
			"legacy_versions": map[string]any{
				"3.6": map[string]any{"scikit-image": "==0.17.2", "matplotlib": "==3.3.4"},
			},
		},
	}
	overlay := map[string]any{
		"internal-tools": map[string]any{"pip": []any{"internal-tools==1.0.0"}},
		"_meta": map[string]any{
			"legacy_versions": map[string]any{
				"3.6": map[string]any{"scikit-image": "==0.19.0-custom", "new-lib": "==1.0.0"},
			},
		},
	}

	merged := knowledge.DeepMerge(base, overlay).(map[string]any)

	assert.Contains(t, merged, "numpy")
	assert.Contains(t, merged, "internal-tools")

	pins := merged["_meta"].(map[string]any)["legacy_versions"].(map[string]any)["3.6"].(map[string]any)
	assert.Equal(t, "==0.19.0-custom", pins["scikit-image"])
	assert.Equal(t, "==1.0.0", pins["new-lib"])
	assert.Equal(t, "==3.3.4", pins["matplotlib"], "siblings survive the merge")

	basePins := base["_meta"].(map[string]any)["legacy_versions"].(map[string]any)["3.6"].(map[string]any)
	assert.Equal(t, "==0.17.2", basePins["scikit-image"], "base is not modified")
	assert.NotContains(t, basePins, "new-lib")
}

func TestDeepMerge_Scalars(t *testing.T) {
	assert.Equal(t, "b", knowledge.DeepMerge("a", "b"))
	assert.Equal(t, []any{"x"}, knowledge.DeepMerge(map[string]any{"k": 1}, []any{"x"}))
	assert.Equal(t, map[string]any{"k": 2}, knowledge.DeepMerge(1, map[string]any{"k": 2}))
}

func TestDeepMerge_ArraysReplace(t *testing.T) {
	base := map[string]any{"numpy": map[string]any{"pip": []any{"a", "b"}, "apt": []any{"python-numpy"}}}
	overlay := map[string]any{"numpy": map[string]any{"pip": []any{"c"}}}

	merged := knowledge.DeepMerge(base, overlay).(map[string]any)
	entry := merged["numpy"].(map[string]any)

	assert.Equal(t, []any{"c"}, entry["pip"])
	assert.Equal(t, []any{"python-numpy"}, entry["apt"])
	assert.Equal(t, []any{"a", "b"}, base["numpy"].(map[string]any)["pip"])
}
