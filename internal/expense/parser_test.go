package expense_test

import (
	"errors"

	"github.com/frahmantamala/expense-bot/internal"
	"github.com/frahmantamala/expense-bot/internal/category"
	"github.com/frahmantamala/expense-bot/internal/expense"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Parse", func() {
	catalog := category.MustCatalog(category.DefaultNames)

	It("should split description, category and amount", func() {
		parsed, err := expense.Parse("Milk Comida 2500", catalog)
		Expect(err).NotTo(HaveOccurred())
		Expect(parsed).To(Equal(expense.Parsed{
			Description: "Milk",
			Category:    "Comida",
			Amount:      2500,
		}))
	})

	It("should resolve the category hint against the catalog", func() {
		parsed, err := expense.Parse("Bencina comb 30000", catalog)
		Expect(err).NotTo(HaveOccurred())
		Expect(parsed.Category).To(Equal("Combustible"))
	})

	It("should tolerate extra whitespace", func() {
		parsed, err := expense.Parse("  Pan   com\t1200.5 ", catalog)
		Expect(err).NotTo(HaveOccurred())
		Expect(parsed.Description).To(Equal("Pan"))
		Expect(parsed.Amount).To(Equal(1200.5))
	})

	It("should accept negative amounts", func() {
		parsed, err := expense.Parse("Refund compras -5000", catalog)
		Expect(err).NotTo(HaveOccurred())
		Expect(parsed.Amount).To(Equal(-5000.0))
	})

	DescribeTable("should reject malformed messages",
		func(text string, code internal.ErrorCode) {
			_, err := expense.Parse(text, catalog)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, expense.ErrMalformedInput)).To(BeTrue())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			Expect(appErr.Code).To(Equal(code))
		},
		Entry("empty", "", internal.ErrCodeMalformedInput),
		Entry("too few words", "Milk 2500", internal.ErrCodeMalformedInput),
		Entry("too many words", "too many words here", internal.ErrCodeMalformedInput),
		Entry("non numeric amount", "Milk Comida lots", internal.ErrCodeInvalidAmount),
		Entry("NaN amount", "Milk Comida NaN", internal.ErrCodeInvalidAmount),
		Entry("infinite amount", "Milk Comida Inf", internal.ErrCodeInvalidAmount),
		Entry("hex float amount", "Milk Comida 0x1p4", internal.ErrCodeInvalidAmount),
		Entry("signed hex float amount", "Milk Comida -0X1P4", internal.ErrCodeInvalidAmount),
	)
})
