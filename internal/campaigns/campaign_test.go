package campaigns

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-engine/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-engine/pkg/errors"
)

func TestValidateAcceptsWellFormedCampaigns(t *testing.T) {
	t.Parallel()

	percent := activeCampaign("a", enums.CampaignTypePercent, "100", 0)
	fixed := activeCampaign("b", enums.CampaignTypeFixed, "0", 0)
	fixed.AppliesTo = enums.CampaignScopeProducts
	fixed.ProductIDs = []string{"p1"}

	require.NoError(t, Validate(percent))
	require.NoError(t, Validate(fixed))
}

func TestValidateCollectsEveryViolation(t *testing.T) {
	t.Parallel()

	c := activeCampaign("a", enums.CampaignTypePercent, "120", 0)
	c.Name = " "
	c.AppliesTo = enums.CampaignScopeCategories
	c.StartAt = timePtr(testNow)
	c.EndAt = timePtr(testNow.Add(-time.Hour))

	err := Validate(c)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	details, ok := typed.Details().(map[string]string)
	require.True(t, ok, "details type %T", typed.Details())
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "value")
	assert.Contains(t, details, "category_ids")
	assert.Contains(t, details, "end_at")
	assert.Len(t, details, 4)
}

func TestValidateRejectsNegativeFixedAndUnknownEnums(t *testing.T) {
	t.Parallel()

	negative := activeCampaign("a", enums.CampaignTypeFixed, "-1", 0)
	assert.Error(t, Validate(negative))

	unknown := activeCampaign("b", enums.CampaignType("BOGO"), "1", 0)
	unknown.Status = enums.CampaignStatus("archived")
	err := Validate(unknown)
	require.Error(t, err)
	details := pkgerrors.As(err).Details().(map[string]string)
	assert.Contains(t, details, "type")
	assert.Contains(t, details, "status")
}
