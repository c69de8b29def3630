package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveRole_String(t *testing.T) {
	assert.Equal(t, "admin", AdminRole.String())
	assert.Equal(t, "seller(pending)", SellerRole(SellerPending).String())
	assert.Equal(t, "seller(approved)", SellerRole(SellerApproved).String())
	assert.Equal(t, "shopper", ShopperRole.String())
	assert.Equal(t, "anonymous", AnonymousRole.String())
}

func TestRoleValuesAndRecordsAreDistinct(t *testing.T) {
	s := Seller{SellerID: "s1", Role: RoleSeller, Status: SellerApproved}
	u := Shopper{UserID: "u1"}
	assert.Equal(t, KindSeller, SellerRole(s.Status).Kind)
	assert.NotEmpty(t, u.UserID)
	assert.Equal(t, KindShopper, ShopperRole.Kind)
}
