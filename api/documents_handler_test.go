package api

import (
	"github.com/gofiber/fiber/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rosemira/rosebot/pkg/knowledge"
	"github.com/rosemira/rosebot/pkg/logger"
	testutils "github.com/rosemira/rosebot/pkg/utils/test"
)

var _ = Describe("handleIngestDocuments", func() {
	var (
		server       *Server
		vectorDriver *testutils.MockVectorDriver
	)

	BeforeEach(func() {
		vectorDriver = testutils.NewMockVectorDriver()

		var err error
		server, err = NewServer(
			Config{ListenAddr: ":0"},
			knowledge.NewBase(testutils.NewMockEmbedder(), vectorDriver, knowledge.Config{}, logger.Nop()),
			nil, nil, nil,
			testutils.NewMockPublisher(),
			logger.Nop(),
		)
		Expect(err).NotTo(HaveOccurred())
	})

	It("returns 503 when the knowledge base is nil", func() {
		noBaseServer, err := NewServer(
			Config{ListenAddr: ":0"},
			nil, nil, nil, nil,
			testutils.NewMockPublisher(),
			logger.Nop(),
		)
		Expect(err).NotTo(HaveOccurred())

		resp := postJSON(noBaseServer, "/v1/documents", []byte(`{"documents":[{"id":"d","content":"c"}]}`))
		Expect(resp.StatusCode).To(Equal(fiber.StatusServiceUnavailable))
	})

	It("returns 400 for invalid JSON", func() {
		resp := postJSON(server, "/v1/documents", []byte(`{oops`))
		Expect(resp.StatusCode).To(Equal(fiber.StatusBadRequest))
	})

	It("returns 400 when no documents are provided", func() {
		resp := postJSON(server, "/v1/documents", []byte(`{"documents":[]}`))
		Expect(resp.StatusCode).To(Equal(fiber.StatusBadRequest))

		var out ErrorResponse
		decodeBody(resp, &out)
		Expect(out.Detail).To(Equal("documents array is required"))
	})

	It("stores the documents and returns 201", func() {
		resp := postJSON(server, "/v1/documents", []byte(`{
			"documents": [
				{"id": "doc-1", "content": "Gentle Cleanser for sensitive skin", "metadata": {"kind": "product"}},
				{"id": "doc-2", "content": "We ship worldwide", "metadata": {"kind": "conversation"}}
			]
		}`))
		Expect(resp.StatusCode).To(Equal(fiber.StatusCreated))

		var out IngestResponse
		decodeBody(resp, &out)
		Expect(out.Status).To(Equal("created"))
		Expect(out.Count).To(Equal(2))

		Expect(vectorDriver.Documents).To(HaveLen(2))
		Expect(vectorDriver.Documents[0].ID).To(Equal("doc-1"))
		Expect(vectorDriver.Documents[0].Embedding).NotTo(BeEmpty())
	})

	It("returns 500 when ingest fails validation", func() {
		resp := postJSON(server, "/v1/documents", []byte(`{"documents":[{"id":"","content":"c"}]}`))
		Expect(resp.StatusCode).To(Equal(fiber.StatusInternalServerError))
	})
})
