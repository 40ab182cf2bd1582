package category_test

import (
	"os"
	"path/filepath"

	"github.com/frahmantamala/expense-bot/internal/category"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Catalog", func() {
	Describe("NewCatalog", func() {
		It("should reject an empty list", func() {
			_, err := category.NewCatalog(nil)
			Expect(err).To(MatchError(category.ErrEmptyCatalog))
		})

		It("should reject blank entries", func() {
			_, err := category.NewCatalog([]string{"Comida", "  "})
			Expect(err).To(MatchError(category.ErrBlankCategory))
		})

		It("should reject case-insensitive duplicates", func() {
			_, err := category.NewCatalog([]string{"Comida", "comida"})
			Expect(err).To(MatchError(category.ErrDuplicateCategory))
		})

		It("should keep order and trim whitespace", func() {
			c, err := category.NewCatalog([]string{" Transporte", "Comida "})
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Names()).To(Equal([]string{"Transporte", "Comida"}))
			Expect(c.Len()).To(Equal(2))
			Expect(c.Index("Comida")).To(Equal(1))
			Expect(c.Contains("comida")).To(BeFalse())
		})

		It("should not expose its backing slice", func() {
			c := category.MustCatalog([]string{"Comida", "Transporte"})
			names := c.Names()
			names[0] = "Hackeado"
			Expect(c.Names()[0]).To(Equal("Comida"))
		})
	})

	Describe("Load", func() {
		var dir string

		BeforeEach(func() {
			dir = GinkgoT().TempDir()
		})

		It("should prefer the YAML file", func() {
			path := filepath.Join(dir, "catalog.yml")
			Expect(os.WriteFile(path, []byte("categories:\n  - Arriendo\n  - Mascotas\n"), 0o600)).To(Succeed())

			c, err := category.Load(path, []string{"Comida"})
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Names()).To(Equal([]string{"Arriendo", "Mascotas"}))
		})

		It("should fail when the file is missing", func() {
			_, err := category.Load(filepath.Join(dir, "missing.yml"), nil)
			Expect(err).To(HaveOccurred())
		})

		It("should fail when the file lists no categories", func() {
			path := filepath.Join(dir, "empty.yml")
			Expect(os.WriteFile(path, []byte("categories: []\n"), 0o600)).To(Succeed())

			_, err := category.Load(path, nil)
			Expect(err).To(MatchError(category.ErrEmptyCatalog))
		})

		It("should use inline names when no file is set", func() {
			c, err := category.Load("", []string{"Comida", "Transporte"})
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Names()).To(Equal([]string{"Comida", "Transporte"}))
		})

		It("should fall back to the default names", func() {
			c, err := category.Load("", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Names()).To(Equal(category.DefaultNames))
		})
	})
})
