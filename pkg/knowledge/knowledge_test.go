package knowledge_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rosemira/rosebot/pkg/knowledge"
	"github.com/rosemira/rosebot/pkg/logger"
	testutils "github.com/rosemira/rosebot/pkg/utils/test"
	"github.com/rosemira/rosebot/pkg/vector"
)

func productResult(id, content, title, productType string) vector.QueryResult {
	return vector.QueryResult{
		Document: vector.Document{
			ID:      id,
			Content: content,
			Metadata: map[string]string{
				vector.MetaKind:        knowledge.KindProduct,
				vector.MetaTitle:       title,
				vector.MetaProductType: productType,
			},
		},
		Score: 0.9,
	}
}

func conversationResult(id, content string) vector.QueryResult {
	return vector.QueryResult{
		Document: vector.Document{
			ID:      id,
			Content: content,
			Metadata: map[string]string{
				vector.MetaKind:  knowledge.KindConversation,
				vector.MetaTopic: "shipping",
			},
		},
		Score: 0.8,
	}
}

var _ = Describe("Base", func() {
	var (
		embedder *testutils.MockEmbedder
		driver   *testutils.MockVectorDriver
		base     *knowledge.Base
	)

	BeforeEach(func() {
		embedder = testutils.NewMockEmbedder()
		driver = testutils.NewMockVectorDriver()
		base = knowledge.NewBase(embedder, driver, knowledge.Config{TopK: 3}, logger.Nop())
	})

	Describe("IsRecommendationQuery", func() {
		It("detects recommendation keywords case-insensitively", func() {
			Expect(knowledge.IsRecommendationQuery("Can you RECOMMEND a cleanser?")).To(BeTrue())
			Expect(knowledge.IsRecommendationQuery("any suggestions?")).To(BeTrue())
			Expect(knowledge.IsRecommendationQuery("What should I use for dry skin?")).To(BeTrue())
			Expect(knowledge.IsRecommendationQuery("which product works best?")).To(BeTrue())
		})

		It("ignores unrelated queries", func() {
			Expect(knowledge.IsRecommendationQuery("do you offer free shipping?")).To(BeFalse())
			Expect(knowledge.IsRecommendationQuery("where is my order?")).To(BeFalse())
		})
	})

	Describe("ConstructPrompt", func() {
		It("interpolates the query between plain quotes without escaping", func() {
			prompt := knowledge.ConstructPrompt(`is the "Gentle Cleanser" vegan?`, nil, nil)
			Expect(prompt).To(ContainSubstring(`User Query: "is the "Gentle Cleanser" vegan?"`))
			Expect(prompt).NotTo(ContainSubstring(`\"`))
		})
	})

	Describe("Retrieve", func() {
		It("includes past conversations for informational queries", func() {
			driver.Results = []vector.QueryResult{
				conversationResult("conv-doc", "We offer free shipping on orders over $50."),
				productResult("prod-doc", "Rosemira offers organic skincare.", "Gentle Cleanser", "Cleanser"),
			}

			retrieval := base.Retrieve(GinkgoT().Context(), "do you offer free shipping?", nil)

			Expect(retrieval.Recommendation).To(BeFalse())
			Expect(retrieval.NewProducts).To(BeEmpty())
			Expect(retrieval.Prompt).To(ContainSubstring("You are a knowledgeable representative of Rosemira"))
			Expect(retrieval.Prompt).To(ContainSubstring(`User Query: "do you offer free shipping?"`))
			Expect(retrieval.Prompt).To(ContainSubstring("Relevant Past Conversations:"))
			Expect(retrieval.Prompt).To(ContainSubstring("1. We offer free shipping on orders over $50."))
			Expect(retrieval.Prompt).NotTo(ContainSubstring("Recommended Products"))
		})

		It("recommends products grouped by category for recommendation queries", func() {
			driver.Results = []vector.QueryResult{
				productResult("p1", "Organic cleanser.", "Gentle Cleanser", "Cleanser"),
				productResult("p2", "Fragrance-free moisturizer.", "Hydrating Moisturizer", "Moisturizer"),
			}

			retrieval := base.Retrieve(GinkgoT().Context(), "what should i use for sensitive skin?", nil)

			Expect(retrieval.Recommendation).To(BeTrue())
			Expect(retrieval.NewProducts).To(Equal([]string{"Gentle Cleanser", "Hydrating Moisturizer"}))
			Expect(retrieval.Prompt).To(ContainSubstring("Recommended Products by Category:"))
			Expect(retrieval.Prompt).To(ContainSubstring("Cleanser:\n- Gentle Cleanser"))
			Expect(retrieval.Prompt).To(ContainSubstring("Moisturizer:\n- Hydrating Moisturizer"))
		})

		It("skips products already suggested in the conversation", func() {
			driver.Results = []vector.QueryResult{
				productResult("p1", "Organic cleanser.", "Gentle Cleanser", "Cleanser"),
				productResult("p2", "Fragrance-free moisturizer.", "Hydrating Moisturizer", "Moisturizer"),
			}

			retrieval := base.Retrieve(
				GinkgoT().Context(),
				"recommend something else",
				[]string{"Gentle Cleanser"},
			)

			Expect(retrieval.NewProducts).To(Equal([]string{"Hydrating Moisturizer"}))
			Expect(retrieval.Prompt).NotTo(ContainSubstring("- Gentle Cleanser"))
		})

		It("fills in defaults for products missing metadata", func() {
			driver.Results = []vector.QueryResult{
				{
					Document: vector.Document{
						ID:       "p1",
						Content:  "Mystery product.",
						Metadata: map[string]string{vector.MetaKind: knowledge.KindProduct},
					},
				},
			}

			retrieval := base.Retrieve(GinkgoT().Context(), "recommend something", nil)

			Expect(retrieval.NewProducts).To(Equal([]string{"Product Name Unknown"}))
			Expect(retrieval.Prompt).To(ContainSubstring("Uncategorized:\n- Product Name Unknown"))
		})

		It("falls back to a bare prompt when embedding fails", func() {
			embedder.FailOn = "broken query"

			retrieval := base.Retrieve(GinkgoT().Context(), "broken query", nil)

			Expect(retrieval.Prompt).To(ContainSubstring(`User Query: "broken query"`))
			Expect(retrieval.Prompt).NotTo(ContainSubstring("Relevant Past Conversations:"))
			Expect(retrieval.NewProducts).To(BeEmpty())
		})

		It("falls back to a bare prompt when the vector store fails", func() {
			driver.FailQuery = true

			retrieval := base.Retrieve(GinkgoT().Context(), "hello", nil)

			Expect(retrieval.Prompt).To(ContainSubstring(`User Query: "hello"`))
			Expect(retrieval.Prompt).NotTo(ContainSubstring("Relevant Past Conversations:"))
		})
	})

	Describe("Ingest", func() {
		It("embeds and stores documents", func() {
			embedder.Embeddings["some content"] = []float32{0.4, 0.5, 0.6}

			err := base.Ingest(GinkgoT().Context(), []knowledge.IngestDocument{
				{
					ID:       "doc-1",
					Content:  "some content",
					Metadata: map[string]string{vector.MetaKind: knowledge.KindConversation},
				},
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(driver.Documents).To(HaveLen(1))
			Expect(driver.Documents[0].ID).To(Equal("doc-1"))
			Expect(driver.Documents[0].Embedding).To(Equal([]float32{0.4, 0.5, 0.6}))
		})

		It("rejects documents without an ID", func() {
			err := base.Ingest(GinkgoT().Context(), []knowledge.IngestDocument{
				{Content: "orphan"},
			})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("ID is required"))
		})

		It("rejects documents without content", func() {
			err := base.Ingest(GinkgoT().Context(), []knowledge.IngestDocument{
				{ID: "doc-1"},
			})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("no content"))
		})
	})

	Describe("EnsureSeeded", func() {
		It("seeds an empty index with starter documents", func() {
			Expect(base.EnsureSeeded(GinkgoT().Context())).To(Succeed())
			Expect(driver.Documents).To(HaveLen(3))

			titles := make([]string, 0, len(driver.Documents))
			for _, doc := range driver.Documents {
				if title, ok := doc.Metadata[vector.MetaTitle]; ok {
					titles = append(titles, title)
				}
			}
			Expect(titles).To(ConsistOf("Gentle Cleanser", "Hydrating Moisturizer"))
		})

		It("leaves a populated index untouched", func() {
			driver.Documents = []vector.Document{{ID: "existing"}}

			Expect(base.EnsureSeeded(GinkgoT().Context())).To(Succeed())
			Expect(driver.Documents).To(HaveLen(1))
		})
	})
})
