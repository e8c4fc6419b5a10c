package service

import (
	"testing"
	"time"

	"github.com/Unicash-organization/unicash-entitlement/internal/api/dto"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/promocode"
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/testutil"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PromoCodeServiceSuite struct {
	testutil.BaseServiceSuite
	service PromoCodeService
}

func TestPromoCodeService(t *testing.T) {
	suite.Run(t, new(PromoCodeServiceSuite))
}

func (s *PromoCodeServiceSuite) SetupTest() {
	s.BaseServiceSuite.SetupTest()
	s.service = NewPromoCodeService(testServiceParams(&s.BaseServiceSuite))
}

func (s *PromoCodeServiceSuite) seedCode(c *promocode.PromoCode) {
	c.BaseModel = types.GetDefaultBaseModel(s.GetContext())
	s.NoError(s.GetStores().PromoCodeRepo.Create(s.GetContext(), c))
}

func (s *PromoCodeServiceSuite) TestFlatDiscount() {
	s.seedCode(&promocode.PromoCode{
		ID:           "promo-1",
		Code:         "FLAT5",
		DiscountType: types.PromoDiscountTypeFlat,
		AmountOff:    decimal.NewFromInt(5),
	})

	res, err := s.service.Validate(s.GetContext(), &dto.ValidatePromoCodeRequest{
		Code:        "FLAT5",
		OrderAmount: decimal.NewFromInt(20),
	})
	s.NoError(err)
	s.True(res.Discount.Equal(decimal.NewFromInt(5)))
	s.True(res.FinalAmount.Equal(decimal.NewFromInt(15)))
}

func (s *PromoCodeServiceSuite) TestPercentageDiscount() {
	s.seedCode(&promocode.PromoCode{
		ID:            "promo-1",
		Code:          "TENOFF",
		DiscountType:  types.PromoDiscountTypePercentage,
		PercentageOff: decimal.NewFromInt(10),
	})

	res, err := s.service.Validate(s.GetContext(), &dto.ValidatePromoCodeRequest{
		Code:        "TENOFF",
		OrderAmount: decimal.NewFromInt(50),
	})
	s.NoError(err)
	s.True(res.Discount.Equal(decimal.NewFromInt(5)))
	s.True(res.FinalAmount.Equal(decimal.NewFromInt(45)))
}

func (s *PromoCodeServiceSuite) TestDiscountCappedAtOrderAmount() {
	s.seedCode(&promocode.PromoCode{
		ID:           "promo-1",
		Code:         "BIG",
		DiscountType: types.PromoDiscountTypeFlat,
		AmountOff:    decimal.NewFromInt(100),
	})

	res, err := s.service.Validate(s.GetContext(), &dto.ValidatePromoCodeRequest{
		Code:        "BIG",
		OrderAmount: decimal.NewFromInt(20),
	})
	s.NoError(err)
	s.True(res.Discount.Equal(decimal.NewFromInt(20)))
	s.True(res.FinalAmount.IsZero(), "the final amount never goes negative")
}

func (s *PromoCodeServiceSuite) TestUnknownCodeFailsClosed() {
	_, err := s.service.Validate(s.GetContext(), &dto.ValidatePromoCodeRequest{
		Code:        "MISSING",
		OrderAmount: decimal.NewFromInt(20),
	})
	s.Error(err)
	s.True(ierr.IsPromoCodeInvalid(err))
}

func (s *PromoCodeServiceSuite) TestExpiredCodeFailsClosed() {
	expired := time.Now().UTC().Add(-time.Hour)
	s.seedCode(&promocode.PromoCode{
		ID:           "promo-1",
		Code:         "OLD",
		RedeemBefore: &expired,
		DiscountType: types.PromoDiscountTypeFlat,
		AmountOff:    decimal.NewFromInt(5),
	})

	_, err := s.service.Validate(s.GetContext(), &dto.ValidatePromoCodeRequest{
		Code:        "OLD",
		OrderAmount: decimal.NewFromInt(20),
	})
	s.Error(err)
	s.True(ierr.IsPromoCodeInvalid(err))
}

func (s *PromoCodeServiceSuite) TestNotYetRedeemableCodeFailsClosed() {
	future := time.Now().UTC().Add(time.Hour)
	s.seedCode(&promocode.PromoCode{
		ID:           "promo-1",
		Code:         "SOON",
		RedeemAfter:  &future,
		DiscountType: types.PromoDiscountTypeFlat,
		AmountOff:    decimal.NewFromInt(5),
	})

	_, err := s.service.Validate(s.GetContext(), &dto.ValidatePromoCodeRequest{
		Code:        "SOON",
		OrderAmount: decimal.NewFromInt(20),
	})
	s.Error(err)
	s.True(ierr.IsPromoCodeInvalid(err))
}

func (s *PromoCodeServiceSuite) TestRedemptionLimitFailsClosed() {
	max := 1
	s.seedCode(&promocode.PromoCode{
		ID:               "promo-1",
		Code:             "ONEUSE",
		MaxRedemptions:   &max,
		TotalRedemptions: 1,
		DiscountType:     types.PromoDiscountTypeFlat,
		AmountOff:        decimal.NewFromInt(5),
	})

	_, err := s.service.Validate(s.GetContext(), &dto.ValidatePromoCodeRequest{
		Code:        "ONEUSE",
		OrderAmount: decimal.NewFromInt(20),
	})
	s.Error(err)
	s.True(ierr.IsPromoCodeInvalid(err))
}

func (s *PromoCodeServiceSuite) TestMinimumOrderFailsClosed() {
	s.seedCode(&promocode.PromoCode{
		ID:             "promo-1",
		Code:           "MIN50",
		MinOrderAmount: decimal.NewFromInt(50),
		DiscountType:   types.PromoDiscountTypeFlat,
		AmountOff:      decimal.NewFromInt(5),
	})

	_, err := s.service.Validate(s.GetContext(), &dto.ValidatePromoCodeRequest{
		Code:        "MIN50",
		OrderAmount: decimal.NewFromInt(20),
	})
	s.Error(err)
	s.True(ierr.IsPromoCodeInvalid(err))

	// Meets the minimum: valid
	res, err := s.service.Validate(s.GetContext(), &dto.ValidatePromoCodeRequest{
		Code:        "MIN50",
		OrderAmount: decimal.NewFromInt(60),
	})
	s.NoError(err)
	s.True(res.FinalAmount.Equal(decimal.NewFromInt(55)))
}

func (s *PromoCodeServiceSuite) TestCodeLookupIsCaseInsensitive() {
	s.seedCode(&promocode.PromoCode{
		ID:           "promo-1",
		Code:         "MiXeD",
		DiscountType: types.PromoDiscountTypeFlat,
		AmountOff:    decimal.NewFromInt(2),
	})

	res, err := s.service.Validate(s.GetContext(), &dto.ValidatePromoCodeRequest{
		Code:        "mixed",
		OrderAmount: decimal.NewFromInt(10),
	})
	s.NoError(err)
	s.True(res.Discount.Equal(decimal.NewFromInt(2)))
}

func (s *PromoCodeServiceSuite) TestRecordRedemptionIncrementsCount() {
	s.seedCode(&promocode.PromoCode{
		ID:           "promo-1",
		Code:         "COUNTME",
		DiscountType: types.PromoDiscountTypeFlat,
		AmountOff:    decimal.NewFromInt(2),
	})

	s.NoError(s.service.RecordRedemption(s.GetContext(), "COUNTME"))

	stored, err := s.GetStores().PromoCodeRepo.Get(s.GetContext(), "promo-1")
	s.NoError(err)
	s.Equal(1, stored.TotalRedemptions)
}

func (s *PromoCodeServiceSuite) TestValidateRejectsNegativeOrderAmount() {
	_, err := s.service.Validate(s.GetContext(), &dto.ValidatePromoCodeRequest{
		Code:        "ANY",
		OrderAmount: decimal.NewFromInt(-1),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}
