package calcerr_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fuyu-hub/EduSolo-app/internal/calc/calcerr"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, calcerr.Status(calcerr.Validationf("bad field")))
	assert.Equal(t, http.StatusBadRequest, calcerr.Status(calcerr.Computationf("diverged")))
	assert.Equal(t, http.StatusInternalServerError, calcerr.Status(assert.AnError))
}

func TestWrappedSentinels(t *testing.T) {
	err := calcerr.Validationf("thickness must be > 0")
	assert.ErrorIs(t, err, calcerr.ErrValidation)
	assert.Contains(t, err.Error(), "thickness")
}
