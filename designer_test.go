package filterdesign

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingDesigner struct{}

func (failingDesigner) Name() string { return "broken" }

func (failingDesigner) Design() (*Table, error) {
	return nil, errors.New("boom")
}

func TestDesignAll(t *testing.T) {
	cic, err := NewCICCompensator(CICConfig{Stage1: wfStage})
	require.NoError(t, err)
	firDesigner, err := NewFIRDesigner(FIRConfig{SampleRate: 48000, Preset: PresetLowPass})
	require.NoError(t, err)

	tables, err := DesignAll(cic, firDesigner)
	require.NoError(t, err)
	require.Len(t, tables, 2)

	assert.Len(t, tables[0].Values, 2)
	assert.Equal(t, CICPrecision, tables[0].Precision)
	assert.Len(t, tables[1].Values, DefaultNumTaps)
	assert.Equal(t, FIRPrecision, tables[1].Precision)
}

func TestDesignAll_StopsAtFirstError(t *testing.T) {
	firDesigner, err := NewFIRDesigner(FIRConfig{SampleRate: 12000, Preset: PresetNFMFlat})
	require.NoError(t, err)

	tables, err := DesignAll(firDesigner, failingDesigner{}, firDesigner)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
	assert.Len(t, tables, 1)
}
