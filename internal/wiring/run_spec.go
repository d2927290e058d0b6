package wiring

import (
	"os"
	"path/filepath"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"gopkg.in/yaml.v3"

	"beacon/internal/gather"
)

var _ = ginkgo.Describe("Run", func() {
	ginkgo.It("resolves a config file into a written plan", func() {
		dir := ginkgo.GinkgoT().TempDir()
		configPath := filepath.Join(dir, "beacon.yaml")
		gomega.Expect(os.WriteFile(configPath, []byte(fixtureConfig), 0o644)).To(gomega.Succeed())
		planPath := filepath.Join(dir, "plan.yaml")

		warnings, err := Run(configPath, gather.ModeNavigation, nil, nil, planPath)
		gomega.Expect(err).To(gomega.Succeed())
		gomega.Expect(warnings).To(gomega.BeEmpty())

		data, err := os.ReadFile(planPath)
		gomega.Expect(err).To(gomega.Succeed())
		var plan struct {
			Settings struct {
				FormFactor string `yaml:"formFactor"`
			} `yaml:"settings"`
			Artifacts []struct {
				ID string `yaml:"id"`
			} `yaml:"artifacts"`
			Audits []struct {
				ID string `yaml:"id"`
			} `yaml:"audits"`
			Categories map[string]any `yaml:"categories"`
		}
		gomega.Expect(yaml.Unmarshal(data, &plan)).To(gomega.Succeed())

		gomega.Expect(plan.Settings.FormFactor).To(gomega.Equal("mobile"))
		gomega.Expect(plan.Categories).To(gomega.HaveKey("seo"))
		gomega.Expect(plan.Categories).NotTo(gomega.HaveKey("performance"))

		auditIDs := make([]string, 0, len(plan.Audits))
		for _, a := range plan.Audits {
			auditIDs = append(auditIDs, a.ID)
		}
		gomega.Expect(auditIDs).To(gomega.ConsistOf("viewport", "document-title"))

		artifactIDs := make([]string, 0, len(plan.Artifacts))
		for _, a := range plan.Artifacts {
			artifactIDs = append(artifactIDs, a.ID)
		}
		gomega.Expect(artifactIDs).To(gomega.ConsistOf("MetaElements", "FullPageScreenshot"))
	})

	ginkgo.It("surfaces warnings for unknown filter entries", func() {
		dir := ginkgo.GinkgoT().TempDir()
		planPath := filepath.Join(dir, "plan.yaml")

		flags := map[string]any{"onlyCategories": []any{"no-such-category"}}
		warnings, err := Run("", gather.ModeNavigation, flags, nil, planPath)
		gomega.Expect(err).To(gomega.Succeed())
		gomega.Expect(warnings).To(gomega.HaveLen(1))
		gomega.Expect(warnings[0]).To(gomega.ContainSubstring("no-such-category"))
	})
})

const fixtureConfig = `
extends: beacon:default
settings:
  onlyCategories:
    - seo
`
