package config

import "github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/valueobject"

// SocietyConfig is the single source of truth for society-specific policy:
// fee schedule, savings rules, loan limits and interest model. It is loaded
// once at startup and passed by value into every engine and use case, with
// no package-level configuration state.
type SocietyConfig struct {
	Society SocietyInfo   `mapstructure:"society"`
	Fees    FeeConfig     `mapstructure:"fees"`
	Savings SavingsConfig `mapstructure:"savings"`
	Loan    LoanConfig    `mapstructure:"loan"`
	Payment PaymentConfig `mapstructure:"payment"`
	Member  MemberConfig  `mapstructure:"member"`
}

// SocietyInfo identifies the society on receipts and statements.
type SocietyInfo struct {
	ID                 string `mapstructure:"id"`
	Name               string `mapstructure:"name"`
	ShortName          string `mapstructure:"shortName"`
	RegistrationNumber string `mapstructure:"registrationNumber"`
	Currency           string `mapstructure:"currency"`
}

// OneTimeFee is a fixed charge collected at most once per member.
type OneTimeFee struct {
	Amount     int64 `mapstructure:"amount"`
	Mandatory  bool  `mapstructure:"mandatory"`
	Refundable bool  `mapstructure:"refundable"`
}

// ProcessingFee is charged on disbursement, either as a percentage of the
// loan amount (clamped to min/max) or as a fixed value.
type ProcessingFee struct {
	Type      string  `mapstructure:"type"` // "percentage" | "fixed"
	Value     float64 `mapstructure:"value"`
	MinAmount int64   `mapstructure:"minAmount"`
	MaxAmount int64   `mapstructure:"maxAmount"` // 0 = no cap
}

// LateFee is the fixed per-installment charge for payments landing in a
// calendar month after the due month.
type LateFee struct {
	Type  string `mapstructure:"type"` // only "fixed" is supported
	Value int64  `mapstructure:"value"`
}

// FeeConfig is the complete fee schedule.
type FeeConfig struct {
	Membership    OneTimeFee    `mapstructure:"membership"`
	ShareCapital  OneTimeFee    `mapstructure:"shareCapital"`
	ProcessingFee ProcessingFee `mapstructure:"processingFee"`
	LateFee       LateFee       `mapstructure:"lateFee"`
}

// SavingsInterest configures interest accrual on savings balances.
type SavingsInterest struct {
	Enabled      bool    `mapstructure:"enabled"`
	RatePerAnnum float64 `mapstructure:"ratePerAnnum"`
}

// SavingsConfig controls the monthly savings component of EMIs and
// standalone savings accounts.
type SavingsConfig struct {
	Enabled           bool            `mapstructure:"enabled"`
	MandatoryWithLoan bool            `mapstructure:"mandatoryWithLoan"`
	DefaultAmount     int64           `mapstructure:"defaultAmount"`
	MinAmount         int64           `mapstructure:"minAmount"`
	MaxAmount         int64           `mapstructure:"maxAmount"`
	Interest          SavingsInterest `mapstructure:"interest"`
}

// RateSlab maps a loan-amount range to an interest rate. MaxAmount of 0
// means the slab is open-ended.
type RateSlab struct {
	MinAmount int64   `mapstructure:"minAmount"`
	MaxAmount int64   `mapstructure:"maxAmount"`
	Rate      float64 `mapstructure:"rate"`
}

// InterestConfig selects the interest model and the applicable rate.
// Slabs are scanned in order; the first match wins, an unmatched amount
// falls back to DefaultRate.
type InterestConfig struct {
	Model       valueobject.InterestModel `mapstructure:"model"`
	RateUnit    valueobject.RateUnit      `mapstructure:"rateUnit"`
	DefaultRate float64                   `mapstructure:"defaultRate"`
	Slabs       []RateSlab                `mapstructure:"slabs"`
}

// EMIConfig controls schedule generation defaults.
type EMIConfig struct {
	DefaultDueDay int `mapstructure:"defaultDueDay"`
}

// TenureConfig bounds the loan tenure in months.
type TenureConfig struct {
	MinMonths     int `mapstructure:"minMonths"`
	MaxMonths     int `mapstructure:"maxMonths"`
	DefaultMonths int `mapstructure:"defaultMonths"`
}

// LoanConfig bounds loan amounts and carries the interest and EMI policy.
type LoanConfig struct {
	MinAmount int64          `mapstructure:"minAmount"`
	MaxAmount int64          `mapstructure:"maxAmount"`
	Tenure    TenureConfig   `mapstructure:"tenure"`
	Interest  InterestConfig `mapstructure:"interest"`
	EMI       EMIConfig      `mapstructure:"emi"`
}

// ReceiptConfig controls receipt numbering.
type ReceiptConfig struct {
	Prefix string `mapstructure:"prefix"`
}

// PaymentConfig controls payment acceptance rules.
type PaymentConfig struct {
	AllowPartialPayment bool          `mapstructure:"allowPartialPayment"`
	MinPartialAmount    int64         `mapstructure:"minPartialAmount"`
	Receipt             ReceiptConfig `mapstructure:"receipt"`
}

// MemberIDFormat controls member business-ID minting.
type MemberIDFormat struct {
	Prefix         string `mapstructure:"prefix"`
	SequenceLength int    `mapstructure:"sequenceLength"`
}

// MemberConfig carries member onboarding policy.
type MemberConfig struct {
	IDFormat MemberIDFormat `mapstructure:"idFormat"`
}

// DefaultSocietyConfig returns the built-in policy used when no
// society.yaml overrides are present.
func DefaultSocietyConfig() SocietyConfig {
	return SocietyConfig{
		Society: SocietyInfo{
			ID:                 "sai-akshaya",
			Name:               "Sri Sai Akshaya Mutually Aided Cooperative Thrift & Credit Society Ltd.",
			ShortName:          "Sai Akshaya",
			RegistrationNumber: "REG/2020/SAI001",
			Currency:           "INR",
		},
		Fees: FeeConfig{
			Membership:   OneTimeFee{Amount: 200, Mandatory: true},
			ShareCapital: OneTimeFee{Amount: 6000, Mandatory: true, Refundable: true},
			ProcessingFee: ProcessingFee{
				Type:      "percentage",
				Value:     1,
				MinAmount: 500,
			},
			LateFee: LateFee{Type: "fixed", Value: 1000},
		},
		Savings: SavingsConfig{
			Enabled:           true,
			MandatoryWithLoan: true,
			DefaultAmount:     200,
			MinAmount:         100,
			MaxAmount:         10000,
			Interest:          SavingsInterest{Enabled: true, RatePerAnnum: 6},
		},
		Loan: LoanConfig{
			MinAmount: 50000,
			MaxAmount: 10000000,
			Tenure:    TenureConfig{MinMonths: 6, MaxMonths: 60, DefaultMonths: 20},
			Interest: InterestConfig{
				Model:       valueobject.ReducingBalance,
				RateUnit:    valueobject.RateMonthly,
				DefaultRate: 1.5,
				Slabs: []RateSlab{
					{MinAmount: 0, MaxAmount: 500000, Rate: 2.0},
					{MinAmount: 500001, MaxAmount: 2000000, Rate: 1.5},
					{MinAmount: 2000001, MaxAmount: 0, Rate: 1.5},
				},
			},
			EMI: EMIConfig{DefaultDueDay: 3},
		},
		Payment: PaymentConfig{
			AllowPartialPayment: true,
			MinPartialAmount:    1000,
			Receipt:             ReceiptConfig{Prefix: "REC"},
		},
		Member: MemberConfig{
			IDFormat: MemberIDFormat{Prefix: "MEM", SequenceLength: 5},
		},
	}
}
