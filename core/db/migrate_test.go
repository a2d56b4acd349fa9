package db

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Migrations", func() {
	It("embeds at least one migration", func() {
		entries, err := migrationsFS.ReadDir("migrations")
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).NotTo(BeEmpty())
	})

	It("carries goose annotations in every migration", func() {
		entries, err := migrationsFS.ReadDir("migrations")
		Expect(err).NotTo(HaveOccurred())

		for _, entry := range entries {
			data, err := migrationsFS.ReadFile("migrations/" + entry.Name())
			Expect(err).NotTo(HaveOccurred())

			content := string(data)
			Expect(content).To(ContainSubstring("-- +goose Up"), entry.Name())
			Expect(content).To(ContainSubstring("-- +goose Down"), entry.Name())
		}
	})

	It("creates every table the stores query", func() {
		data, err := migrationsFS.ReadFile("migrations/00001_create_core_tables.sql")
		Expect(err).NotTo(HaveOccurred())

		content := string(data)
		for _, table := range []string{"workers", "jobs", "commitments", "decision_logs"} {
			Expect(content).To(ContainSubstring("CREATE TABLE " + table))
			Expect(strings.Count(content, "DROP TABLE "+table)).To(Equal(1))
		}
	})
})
