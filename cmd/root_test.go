package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/qre/job"
)

const tinyJob = `
logicalCounts:
  numQubits: 1
  tCount: 1
errorBudget: 0.5
`

var _ = Describe("Root command", func() {
	var (
		dir     string
		jobFile string
		stdout  *bytes.Buffer
		stderr  *bytes.Buffer
	)

	run := func(args ...string) error {
		root := NewRootCmd()
		root.SetOut(stdout)
		root.SetErr(stderr)
		root.SetArgs(append(args,
			"--env-file", filepath.Join(dir, "missing.env")))

		return root.Execute()
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		jobFile = filepath.Join(dir, "job.yaml")
		Expect(os.WriteFile(jobFile, []byte(tinyJob), 0o644)).To(Succeed())

		stdout = &bytes.Buffer{}
		stderr = &bytes.Buffer{}
	})

	It("should estimate a job", func() {
		Expect(run("estimate", jobFile)).To(Succeed())

		Expect(stdout.String()).To(ContainSubstring("status: success"))
		Expect(stdout.String()).To(ContainSubstring("physicalQubits: 14"))
	})

	It("should compute a frontier as JSON", func() {
		Expect(run("frontier", jobFile, "--format", "json")).To(Succeed())

		Expect(stdout.String()).To(ContainSubstring(`"frontierEntries"`))
	})

	It("should write text to a file", func() {
		out := filepath.Join(dir, "out.txt")

		Expect(run("estimate", jobFile, "-f", "text", "-o", out)).To(Succeed())

		content, err := os.ReadFile(out)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(content)).To(ContainSubstring("Physical qubits"))
		Expect(stdout.Len()).To(BeZero())
	})

	It("should list factories", func() {
		Expect(run("factories", jobFile,
			"--error-rate", "0.1", "--format", "text")).To(Succeed())

		Expect(stdout.String()).To(ContainSubstring("trivial 1-to-1"))
	})

	It("should reject unknown formats", func() {
		err := run("estimate", jobFile, "--format", "xml")

		Expect(err).To(MatchError(ContainSubstring("unknown output format")))
	})

	It("should return job failures", func() {
		Expect(os.WriteFile(jobFile, []byte(tinyJob+`
qubitParams:
  name: nope
`), 0o644)).To(Succeed())

		err := run("estimate", jobFile)

		var f *job.Failure
		Expect(errors.As(err, &f)).To(BeTrue())
		Expect(f.Code).To(Equal(job.CodeInvalidQubitParams))
	})

	It("should record into a database", func() {
		record := filepath.Join(dir, "rec")

		Expect(run("estimate", jobFile, "--record", record)).To(Succeed())

		Expect(record + ".sqlite3").To(BeAnExistingFile())
	})

	It("should read defaults from an env file", func() {
		envFile := filepath.Join(dir, "test.env")
		Expect(os.WriteFile(envFile,
			[]byte(EnvVerbosity+"=loud\n"), 0o644)).To(Succeed())
		DeferCleanup(os.Unsetenv, EnvVerbosity)

		root := NewRootCmd()
		root.SetOut(stdout)
		root.SetErr(stderr)
		root.SetArgs([]string{"estimate", jobFile, "--env-file", envFile})

		Expect(root.Execute()).To(MatchError(ContainSubstring(EnvVerbosity)))
	})

	It("should prefer flags over the environment", func() {
		Expect(os.Setenv(EnvVerbosity, "loud")).To(Succeed())
		DeferCleanup(os.Unsetenv, EnvVerbosity)

		Expect(run("estimate", jobFile, "-v", "1")).To(Succeed())
	})
})

var _ = Describe("writeFailure", func() {
	It("should write the failure bundle", func() {
		var buf bytes.Buffer

		writeFailure(&buf, &job.Failure{
			Code:    job.CodeInvalidErrorBudget,
			Message: "error budget must be between 0.0 and 1.0 (exclusive)",
		})

		Expect(buf.String()).To(ContainSubstring("status: failed"))
		Expect(buf.String()).To(ContainSubstring("code: InvalidInput.ErrorBudget"))
	})

	It("should print other errors", func() {
		var buf bytes.Buffer

		writeFailure(&buf, errors.New("accepts 1 arg(s)"))

		Expect(buf.String()).To(Equal("Error: accepts 1 arg(s)\n"))
	})
})
