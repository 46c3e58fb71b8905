package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationFromSQL(t *testing.T) {
	assert.Equal(t, "SELECT", operationFromSQL("select * from quotations"))
	assert.Equal(t, "UPDATE", operationFromSQL(`WITH x AS (SELECT 1) UPDATE "invoices" SET version = version + 1`))
	assert.Equal(t, "INSERT", operationFromSQL(" (INSERT INTO ports VALUES (?))"))
	assert.Equal(t, "UNKNOWN", operationFromSQL(""))
}
