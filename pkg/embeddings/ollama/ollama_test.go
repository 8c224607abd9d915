package ollama_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rosemira/rosebot/pkg/embeddings/ollama"
	"github.com/rosemira/rosebot/pkg/vector"
)

var _ = Describe("Embedder", func() {
	Describe("NewEmbedder", func() {
		It("should apply defaults when config is empty", func() {
			embedder, err := ollama.NewEmbedder(ollama.EmbedderConfig{})
			Expect(err).NotTo(HaveOccurred())
			Expect(embedder).NotTo(BeNil())
		})
	})

	Describe("Embed", func() {
		It("should post the text and return the first embedding", func() {
			var captured map[string]any
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(Equal("/api/embed"))
				Expect(json.NewDecoder(r.Body).Decode(&captured)).To(Succeed())

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{
					"embeddings": [][]float32{{0.1, 0.2, 0.3}},
				})
			}))
			defer server.Close()

			embedder, err := ollama.NewEmbedder(ollama.EmbedderConfig{
				BaseURL: server.URL,
				Model:   "nomic-embed-text",
			})
			Expect(err).NotTo(HaveOccurred())

			embedding, err := embedder.Embed(GinkgoT().Context(), "what is in the gentle cleanser?")
			Expect(err).NotTo(HaveOccurred())
			Expect(embedding).To(Equal([]float32{0.1, 0.2, 0.3}))

			Expect(captured["model"]).To(Equal("nomic-embed-text"))
			Expect(captured["input"]).To(Equal("what is in the gentle cleanser?"))
		})

		It("should wrap upstream failures in ErrEmbedding", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "model not found", http.StatusNotFound)
			}))
			defer server.Close()

			embedder, err := ollama.NewEmbedder(ollama.EmbedderConfig{BaseURL: server.URL})
			Expect(err).NotTo(HaveOccurred())

			_, err = embedder.Embed(GinkgoT().Context(), "hello")
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, vector.ErrEmbedding)).To(BeTrue())
		})

		It("should error when no embeddings are returned", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{"embeddings": [][]float32{}})
			}))
			defer server.Close()

			embedder, err := ollama.NewEmbedder(ollama.EmbedderConfig{BaseURL: server.URL})
			Expect(err).NotTo(HaveOccurred())

			_, err = embedder.Embed(GinkgoT().Context(), "hello")
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, vector.ErrEmbedding)).To(BeTrue())
		})
	})
})
