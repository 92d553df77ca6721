package dynamo

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUpdateExpr_SingleField(t *testing.T) {
	expr, names, values, err := buildUpdateExpr(map[string]interface{}{"tag": "work"})

	require.NoError(t, err)
	assert.Equal(t, "SET #f0 = :v0", expr)
	assert.Equal(t, "tag", names["#f0"])
	av, ok := values[":v0"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "work", av.Value)
}

func TestBuildUpdateExpr_MultipleFields(t *testing.T) {
	expr, names, values, err := buildUpdateExpr(map[string]interface{}{
		"subject": "call back",
		"status":  1,
	})

	require.NoError(t, err)
	assert.Len(t, names, 2)
	assert.Len(t, values, 2)
	assert.Contains(t, expr, "SET ")
	assert.Contains(t, expr, ", ")
}

func TestBuildUpdateExpr_Empty(t *testing.T) {
	_, _, _, err := buildUpdateExpr(map[string]interface{}{})
	require.Error(t, err)
}

func TestEpochAttr(t *testing.T) {
	at := time.Date(2024, 6, 1, 4, 30, 0, 0, time.UTC)
	av, ok := epochAttr(at).(*types.AttributeValueMemberN)
	require.True(t, ok)
	assert.Equal(t, "1717216200", av.Value)
}

func TestNumAttr(t *testing.T) {
	av, ok := numAttr(0).(*types.AttributeValueMemberN)
	require.True(t, ok)
	assert.Equal(t, "0", av.Value)
}
