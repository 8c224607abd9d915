package ollama_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rosemira/rosebot/pkg/llm"
	"github.com/rosemira/rosebot/pkg/llm/provider/ollama"
)

var _ = Describe("Client", func() {
	Describe("Complete", func() {
		It("should send the transcript and return the reply", func() {
			var captured map[string]any
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(Equal("/api/chat"))
				Expect(json.NewDecoder(r.Body).Decode(&captured)).To(Succeed())

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{
					"message": map[string]string{
						"role":    "assistant",
						"content": "Our Gentle Cleanser works well for sensitive skin.",
					},
				})
			}))
			defer server.Close()

			client, err := ollama.NewClient(ollama.Config{
				BaseURL:     server.URL,
				Model:       "llama3.2",
				Temperature: 0.7,
				MaxTokens:   500,
			})
			Expect(err).NotTo(HaveOccurred())

			reply, err := client.Complete(GinkgoT().Context(), []llm.Message{
				{Role: llm.RoleSystem, Content: "You are a helpful representative."},
				{Role: llm.RoleUser, Content: "What should I use for sensitive skin?"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(reply).To(ContainSubstring("Gentle Cleanser"))

			Expect(captured["model"]).To(Equal("llama3.2"))
			Expect(captured["stream"]).To(BeFalse())
			msgs, ok := captured["messages"].([]any)
			Expect(ok).To(BeTrue())
			Expect(msgs).To(HaveLen(2))
			opts, ok := captured["options"].(map[string]any)
			Expect(ok).To(BeTrue())
			Expect(opts["temperature"]).To(BeNumerically("~", 0.7, 0.001))
			Expect(opts["num_predict"]).To(BeNumerically("==", 500))
		})

		It("should surface upstream errors", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "model not found", http.StatusNotFound)
			}))
			defer server.Close()

			client, err := ollama.NewClient(ollama.Config{BaseURL: server.URL})
			Expect(err).NotTo(HaveOccurred())

			_, err = client.Complete(GinkgoT().Context(), []llm.Message{
				{Role: llm.RoleUser, Content: "hello"},
			})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("status 404"))
		})
	})

	Describe("Interface compliance", func() {
		It("should implement llm.ChatModel", func() {
			var _ llm.ChatModel = (*ollama.Client)(nil)
		})
	})
})
