package category_test

import (
	"strings"

	"github.com/frahmantamala/expense-bot/internal/category"
	"github.com/lithammer/fuzzysearch/fuzzy"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Resolver", func() {
	var catalog category.Catalog

	BeforeEach(func() {
		catalog = category.MustCatalog(category.DefaultNames)
	})

	Describe("Resolve", func() {
		It("should resolve every catalog entry to itself", func() {
			for _, name := range catalog.Names() {
				Expect(catalog.Resolve(name)).To(Equal(name))
			}
		})

		It("should resolve lowercase and uppercase spellings of an entry to itself", func() {
			for _, name := range catalog.Names() {
				Expect(catalog.Resolve(strings.ToLower(name))).To(Equal(name))
				Expect(catalog.Resolve(strings.ToUpper(name))).To(Equal(name))
			}
		})

		DescribeTable("unique prefixes",
			func(input, expected string) {
				Expect(catalog.Resolve(input)).To(Equal(expected))
			},
			Entry("supermarket", "sup", "Supermercado"),
			Entry("transport", "Tra", "Transporte"),
			Entry("fuel", "comb", "Combustible"),
			Entry("shopping", "COMPR", "Compras"),
			Entry("food", "comi", "Comida"),
			Entry("health", "sa", "Salud"),
			Entry("services", "se", "Servicios"),
			Entry("education", "edu", "Educación"),
			Entry("travel", "v", "Viajes"),
		)

		It("should fall back to edit distance on typos", func() {
			Expect(catalog.Resolve("transprote")).To(Equal("Transporte"))
			Expect(catalog.Resolve("supremercado")).To(Equal("Supermercado"))
			Expect(catalog.Resolve("educacion")).To(Equal("Educación"))
		})

		It("should pick the closest entry when several share the prefix", func() {
			c := category.MustCatalog([]string{"Comida", "Combustible", "Compras"})
			Expect(category.Levenshtein("com", "Comida")).To(Equal(3))
			Expect(category.Levenshtein("com", "Combustible")).To(Equal(8))
			Expect(category.Levenshtein("com", "Compras")).To(Equal(4))
			Expect(c.Resolve("com")).To(Equal("Comida"))
		})

		It("should break distance ties by catalog order", func() {
			c := category.MustCatalog([]string{"Gas", "Bus", "Pan"})
			Expect(c.Resolve("xyz")).To(Equal("Gas"))

			reversed := category.MustCatalog([]string{"Pan", "Bus", "Gas"})
			Expect(reversed.Resolve("xyz")).To(Equal("Pan"))
		})

		It("should resolve empty input to the first shortest entry", func() {
			Expect(catalog.Resolve("")).To(Equal("Salud"))
		})

		It("should always return a catalog member", func() {
			for _, input := range []string{"", "zzzz", "123", "ñandú", "comida extra larga", "  "} {
				Expect(catalog.Contains(catalog.Resolve(input))).To(BeTrue(), "input %q", input)
			}
		})

		It("should return empty string for the zero catalog", func() {
			var zero category.Catalog
			Expect(zero.Resolve("comida")).To(BeEmpty())
		})
	})

	Describe("Levenshtein", func() {
		DescribeTable("known distances",
			func(a, b string, expected int) {
				Expect(category.Levenshtein(a, b)).To(Equal(expected))
			},
			Entry("classic", "kitten", "sitting", 3),
			Entry("empty left", "", "abc", 3),
			Entry("empty right", "abcd", "", 4),
			Entry("both empty", "", "", 0),
			Entry("case insensitive", "COMIDA", "comida", 0),
			Entry("accented runes count once", "Educacion", "Educación", 1),
			Entry("accented uppercase", "ÁRBOL", "árbol", 0),
		)

		It("should be symmetric and zero on identity", func() {
			words := []string{"", "a", "com", "Comida", "combustible", "salud", "kitten", "sitting", "ñandú"}
			for _, a := range words {
				Expect(category.Levenshtein(a, a)).To(Equal(0))
				for _, b := range words {
					Expect(category.Levenshtein(a, b)).To(Equal(category.Levenshtein(b, a)), "%q vs %q", a, b)
				}
			}
		})

		It("should agree with the fuzzysearch implementation on lowercase input", func() {
			words := []string{"", "gas", "comida", "combustible", "compras", "transporte", "educación", "sup", "otros"}
			for _, a := range words {
				for _, b := range words {
					Expect(category.Levenshtein(a, b)).To(Equal(fuzzy.LevenshteinDistance(a, b)), "%q vs %q", a, b)
				}
			}
		})
	})
})
