package openai_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rosemira/rosebot/pkg/llm"
	"github.com/rosemira/rosebot/pkg/llm/provider/openai"
)

var _ = Describe("Client", func() {
	Describe("NewClient", func() {
		It("should require an API key", func() {
			_, err := openai.NewClient(openai.Config{})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("API key is required"))
		})
	})

	Describe("Complete", func() {
		It("should return the first choice content", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(Equal("/chat/completions"))
				Expect(r.Header.Get("Authorization")).To(Equal("Bearer test-key"))

				var req map[string]any
				Expect(json.NewDecoder(r.Body).Decode(&req)).To(Succeed())
				Expect(req["model"]).To(Equal("gpt-4o-mini"))

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{
					"id":     "chatcmpl-test",
					"object": "chat.completion",
					"choices": []map[string]any{
						{
							"index": 0,
							"message": map[string]string{
								"role":    "assistant",
								"content": "We offer free shipping on orders over $50.",
							},
							"finish_reason": "stop",
						},
					},
				})
			}))
			defer server.Close()

			client, err := openai.NewClient(openai.Config{
				APIKey:  "test-key",
				BaseURL: server.URL,
			})
			Expect(err).NotTo(HaveOccurred())

			reply, err := client.Complete(GinkgoT().Context(), []llm.Message{
				{Role: llm.RoleUser, Content: "Do you offer free shipping?"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(reply).To(ContainSubstring("free shipping"))
		})

		It("should error when no choices are returned", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{
					"id":      "chatcmpl-test",
					"object":  "chat.completion",
					"choices": []any{},
				})
			}))
			defer server.Close()

			client, err := openai.NewClient(openai.Config{
				APIKey:  "test-key",
				BaseURL: server.URL,
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = client.Complete(GinkgoT().Context(), []llm.Message{
				{Role: llm.RoleUser, Content: "hello"},
			})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("no response choices"))
		})
	})
})
