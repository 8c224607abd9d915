package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rosemira/rosebot/pkg/config"
)

var _ = Describe("Config", func() {
	Describe("NewDefaultConfig", func() {
		It("populates every section", func() {
			cfg := config.NewDefaultConfig()

			Expect(cfg.Version).To(Equal(config.CurrentV))
			Expect(cfg.API.Listen).To(Equal(":8080"))
			Expect(cfg.Knowledge.IndexPath).To(Equal("faiss_index"))
			Expect(cfg.Knowledge.TopK).To(Equal(3))
			Expect(cfg.VectorStore.Provider).To(Equal("sqlite"))
			Expect(cfg.Embedding.Provider).To(Equal("ollama"))
			Expect(cfg.Embedding.Dimensions).To(Equal(uint(768)))
			Expect(cfg.LLM.Provider).To(Equal("ollama"))
			Expect(cfg.LLM.MaxTokens).To(Equal(500))
			Expect(cfg.Shopify.APIVersion).To(Equal("2023-07"))
			Expect(cfg.Shopify.SendReplies).To(BeFalse())
			Expect(cfg.Events.Provider).To(Equal("nop"))
			Expect(cfg.Events.Topic).To(Equal("rosebot.turns"))
			Expect(cfg.Session.Window).To(Equal(20))
		})
	})

	Describe("ParseConfigTOML", func() {
		It("parses a valid config", func() {
			data := []byte(`
version = 0

[api]
listen = ":9090"

[knowledge]
index_path = "/var/lib/rosebot/index"
top_k = 5

[shopify]
shop_url = "https://rosemira.myshopify.com"
send_replies = true
`)
			cfg, err := config.ParseConfigTOML(data)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.API.Listen).To(Equal(":9090"))
			Expect(cfg.Knowledge.IndexPath).To(Equal("/var/lib/rosebot/index"))
			Expect(cfg.Knowledge.TopK).To(Equal(5))
			Expect(cfg.Shopify.ShopURL).To(Equal("https://rosemira.myshopify.com"))
			Expect(cfg.Shopify.SendReplies).To(BeTrue())
		})

		It("rejects unsupported versions", func() {
			_, err := config.ParseConfigTOML([]byte("version = 99"))
			Expect(err).To(MatchError(ContainSubstring("unsupported config version")))
		})

		It("rejects malformed TOML", func() {
			_, err := config.ParseConfigTOML([]byte("[api\nlisten = oops"))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Configer", func() {
		var dir string

		BeforeEach(func() {
			dir = GinkgoT().TempDir()
		})

		It("returns defaults when no config file exists", func() {
			cfger, err := config.NewConfiger(dir)
			Expect(err).NotTo(HaveOccurred())

			cfg, err := cfger.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.API.Listen).To(Equal(":8080"))
		})

		It("round-trips save and load", func() {
			cfger, err := config.NewConfiger(dir)
			Expect(err).NotTo(HaveOccurred())

			cfg := config.NewDefaultConfig()
			cfg.API.Listen = ":7070"
			cfg.Shopify.ShopURL = "https://rosemira.myshopify.com"
			Expect(cfger.SaveConfig(cfg)).To(Succeed())

			loaded, err := cfger.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.API.Listen).To(Equal(":7070"))
			Expect(loaded.Shopify.ShopURL).To(Equal("https://rosemira.myshopify.com"))
		})

		It("fills defaults for fields missing from the file", func() {
			path := filepath.Join(dir, "config.toml")
			Expect(os.WriteFile(path, []byte("[api]\nlisten = \":7071\"\n"), 0o600)).To(Succeed())

			cfger, err := config.NewConfiger(dir)
			Expect(err).NotTo(HaveOccurred())

			cfg, err := cfger.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.API.Listen).To(Equal(":7071"))
			Expect(cfg.Knowledge.TopK).To(Equal(3))
			Expect(cfg.Embedding.Model).To(Equal("nomic-embed-text"))
		})

		It("sets and gets values by dotted key", func() {
			cfger, err := config.NewConfiger(dir)
			Expect(err).NotTo(HaveOccurred())

			Expect(cfger.SetConfigValue("knowledge.top_k", "7")).To(Succeed())

			got, err := cfger.GetConfigValue("knowledge.top_k")
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal("7"))
		})

		It("rejects unknown keys", func() {
			cfger, err := config.NewConfiger(dir)
			Expect(err).NotTo(HaveOccurred())

			Expect(cfger.SetConfigValue("nope.nothing", "x")).NotTo(Succeed())
			_, err = cfger.GetConfigValue("nope.nothing")
			Expect(err).To(HaveOccurred())
		})

		It("rejects non-numeric values for numeric keys", func() {
			cfger, err := config.NewConfiger(dir)
			Expect(err).NotTo(HaveOccurred())

			Expect(cfger.SetConfigValue("embedding.dimensions", "lots")).NotTo(Succeed())
			Expect(cfger.SetConfigValue("shopify.send_replies", "maybe")).NotTo(Succeed())
		})
	})

	Describe("ValidConfigKeys", func() {
		It("lists every supported key exactly once", func() {
			keys := config.ValidConfigKeys()
			seen := map[string]int{}
			for _, k := range keys {
				seen[k]++
				Expect(config.IsValidConfigKey(k)).To(BeTrue())
			}
			for k, n := range seen {
				Expect(n).To(Equal(1), "duplicate key %s", k)
			}
			Expect(keys).To(ContainElement("api.listen"))
			Expect(keys).To(ContainElement("knowledge.index_path"))
			Expect(keys).To(ContainElement("events.topic"))
		})
	})

	Describe("InitViper", func() {
		It("applies defaults and env overrides", func() {
			GinkgoT().Setenv("ROSEBOT_API_LISTEN", ":6060")

			v, err := config.InitViper(GinkgoT().TempDir())
			Expect(err).NotTo(HaveOccurred())

			Expect(v.GetString("api.listen")).To(Equal(":6060"))
			Expect(v.GetString("embedding.model")).To(Equal("nomic-embed-text"))
			Expect(v.GetInt("knowledge.top_k")).To(Equal(3))
		})
	})
})
