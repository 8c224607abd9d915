package seedcmder

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("NewSeedCmd", func() {
	It("creates a command with the correct use string", func() {
		cmd := NewSeedCmd()
		Expect(cmd.Use).To(Equal("seed"))
	})

	It("registers the configuration flags", func() {
		cmd := NewSeedCmd()
		for _, name := range []string{
			"file",
			"index",
			"vector-store-provider",
			"vector-store-target",
			"embedding-provider",
			"embedding-model",
			"embedding-dimensions",
		} {
			Expect(cmd.Flags().Lookup(name)).NotTo(BeNil(), "missing flag %s", name)
		}
	})

	It("rejects positional arguments", func() {
		cmd := NewSeedCmd()
		cmd.SetArgs([]string{"extra"})
		err := cmd.Execute()
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("loadDocuments", func() {
	writeFile := func(content string) string {
		path := filepath.Join(GinkgoT().TempDir(), "documents.json")
		Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())
		return path
	}

	It("decodes a JSON array of documents", func() {
		path := writeFile(`[
			{"id": "doc-1", "content": "Gentle Cleanser is fragrance free.",
			 "metadata": {"kind": "product", "title": "Gentle Cleanser"}},
			{"id": "doc-2", "content": "We ship within two business days."}
		]`)

		docs, err := loadDocuments(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(docs).To(HaveLen(2))
		Expect(docs[0].ID).To(Equal("doc-1"))
		Expect(docs[0].Metadata).To(HaveKeyWithValue("title", "Gentle Cleanser"))
		Expect(docs[1].Content).To(Equal("We ship within two business days."))
	})

	It("fails on a missing file", func() {
		_, err := loadDocuments(filepath.Join(GinkgoT().TempDir(), "absent.json"))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("reading documents file"))
	})

	It("fails on malformed JSON", func() {
		path := writeFile(`{"id": "doc-1"}`)

		_, err := loadDocuments(path)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("parsing documents file"))
	})

	It("rejects an empty array", func() {
		path := writeFile(`[]`)

		_, err := loadDocuments(path)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("holds no documents"))
	})
})
