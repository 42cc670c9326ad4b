package entity

import "github.com/rewardlab/backend/pkg/enum"

type RewardCategory string

var (
	PointsReward     = enum.New(RewardCategory("POINTS"))
	ItemReward       = enum.New(RewardCategory("ITEM"))
	CouponReward     = enum.New(RewardCategory("COUPON"))
	CurrencyReward   = enum.New(RewardCategory("CURRENCY"))
	ExperienceReward = enum.New(RewardCategory("EXPERIENCE"))
)

type RewardSubType string

var (
	// Points subtypes
	RegularPoints  = enum.New(RewardSubType("REGULAR"))
	BonusPoints    = enum.New(RewardSubType("BONUS"))
	EventPoints    = enum.New(RewardSubType("EVENT"))
	ReferralPoints = enum.New(RewardSubType("REFERRAL"))

	// Item subtypes
	GameItem      = enum.New(RewardSubType("GAME_ITEM"))
	CharacterItem = enum.New(RewardSubType("CHARACTER_ITEM"))
	Consumable    = enum.New(RewardSubType("CONSUMABLE"))
	Equipment     = enum.New(RewardSubType("EQUIPMENT"))

	// Coupon subtypes
	DiscountCoupon = enum.New(RewardSubType("DISCOUNT"))
	GiftCoupon     = enum.New(RewardSubType("GIFT"))
	EventCoupon    = enum.New(RewardSubType("EVENT"))
	SpecialCoupon  = enum.New(RewardSubType("SPECIAL"))

	// Currency subtypes
	GoldCurrency    = enum.New(RewardSubType("GOLD"))
	DiamondCurrency = enum.New(RewardSubType("DIAMOND"))
	PremiumCurrency = enum.New(RewardSubType("PREMIUM"))

	// Experience subtypes
	CharacterExperience = enum.New(RewardSubType("CHARACTER"))
	SkillExperience     = enum.New(RewardSubType("SKILL"))
	GuildExperience     = enum.New(RewardSubType("GUILD"))
)

// SubTypesByCategory is the per-category valid subtype set. A reward is a
// tagged union over the category discriminant, the subtype must belong to it.
var SubTypesByCategory = map[RewardCategory][]RewardSubType{
	PointsReward:     {RegularPoints, BonusPoints, EventPoints, ReferralPoints},
	ItemReward:       {GameItem, CharacterItem, Consumable, Equipment},
	CouponReward:     {DiscountCoupon, GiftCoupon, EventCoupon, SpecialCoupon},
	CurrencyReward:   {GoldCurrency, DiamondCurrency, PremiumCurrency},
	ExperienceReward: {CharacterExperience, SkillExperience, GuildExperience},
}

func (c RewardCategory) IsValidSubType(subType RewardSubType) bool {
	for _, s := range SubTypesByCategory[c] {
		if s == subType {
			return true
		}
	}

	return false
}

type Reward struct {
	Base

	EventID string
	Event   Event `gorm:"foreignKey:EventID"`

	Category RewardCategory
	SubType  RewardSubType

	Name        string
	Description string `gorm:"type:text"`
	ImageURL    string

	// Metadata shape depends on the category, e.g. quantity for POINTS,
	// itemCode and rarity for ITEM.
	Metadata Map
}
