package job

import (
	"context"
	"database/sql"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sarchlab/qre/counts"
	"github.com/sarchlab/qre/datarecording"
	"github.com/sarchlab/qre/monitoring"
	"github.com/sarchlab/qre/qubit"
)

func tinyJob() *Job {
	return &Job{
		LogicalCounts: counts.LogicalCounts{NumQubits: 1, TCount: 1},
		Params: Params{
			ErrorBudget: counts.BudgetParams{Total: ptr(0.5)},
		},
	}
}

var _ = Describe("Runner", func() {
	var (
		runner *Runner
		ctx    context.Context
	)

	BeforeEach(func() {
		runner = MakeRunnerBuilder().WithParallelism(2).Build()
		ctx = context.Background()
	})

	It("should panic without parallelism", func() {
		Expect(func() {
			MakeRunnerBuilder().WithParallelism(0).Build()
		}).To(Panic())
	})

	It("should estimate a single point", func() {
		results, err := runner.Run(ctx, tinyJob())
		Expect(err).ToNot(HaveOccurred())
		Expect(results).To(HaveLen(1))

		r := results[0]
		Expect(r.Status).To(Equal(StatusSuccess))
		Expect(r.FrontierEntries).To(BeEmpty())

		Expect(r.LogicalQubit.CodeDistance).To(Equal(uint64(1)))
		Expect(r.LogicalQubit.PhysicalQubits).To(Equal(uint64(2)))
		Expect(r.LogicalQubit.LogicalCycleTime).To(Equal(uint64(400)))

		Expect(r.PhysicalCounts.PhysicalQubits).To(Equal(uint64(14)))
		Expect(r.PhysicalCounts.Runtime).To(Equal(uint64(400)))
		Expect(r.PhysicalCounts.RQOPS).To(Equal(uint64(15_000_000)))

		b := r.PhysicalCounts.Breakdown
		Expect(b.AlgorithmicLogicalQubits).To(Equal(uint64(6)))
		Expect(b.LogicalDepth).To(Equal(uint64(1)))
		Expect(b.NumTStates).To(Equal(uint64(1)))
		Expect(b.NumTFactories).To(Equal(uint64(1)))
		Expect(b.NumTFactoryRuns).To(Equal(uint64(1)))
		Expect(b.PhysicalQubitsForAlgorithm).To(Equal(uint64(12)))
		Expect(b.PhysicalQubitsForTFactories).To(Equal(uint64(2)))
		Expect(*b.RequiredLogicalTStateErrorRate).To(Equal(0.25))
		Expect(b.NumTsPerRotation).To(BeNil())

		Expect(r.TFactory.NumRounds).To(Equal(1))
		Expect(r.TFactory.Runtime).To(Equal(uint64(400)))
		Expect(r.ErrorBudget.Logical).To(Equal(0.25))
		Expect(r.ErrorBudget.TStates).To(Equal(0.25))

		Expect(r.PhysicalCountsFormatted.PhysicalQubits).To(Equal("14"))
		Expect(r.PhysicalCountsFormatted.Runtime).To(Equal("400 nanosecs"))
		Expect(r.PhysicalCountsFormatted.RQOPS).To(Equal("15M"))

		Expect(r.JobParams.QubitParams.Name).To(Equal(qubit.DefaultName))
		Expect(r.JobParams.ErrorBudget).To(Equal(0.5))
		Expect(r.JobParams.EstimateType).To(Equal(SinglePoint))
	})

	It("should build a frontier", func() {
		j := tinyJob()
		j.EstimateType = Frontier

		results, err := runner.Run(ctx, j)
		Expect(err).ToNot(HaveOccurred())

		r := results[0]
		Expect(r.PhysicalCounts).To(BeNil())
		Expect(r.LogicalQubit).To(BeNil())
		Expect(r.FrontierEntries).ToNot(BeEmpty())
		Expect(r.FrontierEntries[0].PhysicalCounts.PhysicalQubits).
			To(Equal(uint64(14)))
	})

	It("should keep the order of items", func() {
		j := tinyJob()
		j.Items = []Params{
			{ErrorBudget: counts.BudgetParams{Total: ptr(0.5)}},
			{ErrorBudget: counts.BudgetParams{Total: ptr(0.1)}},
			{ErrorBudget: counts.BudgetParams{Total: ptr(0.3)}},
		}

		results, err := runner.Run(ctx, j)
		Expect(err).ToNot(HaveOccurred())
		Expect(results).To(HaveLen(3))
		Expect(results[0].JobParams.ErrorBudget).To(Equal(0.5))
		Expect(results[1].JobParams.ErrorBudget).To(Equal(0.1))
		Expect(results[2].JobParams.ErrorBudget).To(Equal(0.3))
	})

	It("should report the index of a failed item", func() {
		j := tinyJob()
		j.Items = []Params{
			{},
			{QubitParams: qubit.Params{Name: "nope"}},
			{ErrorBudgetStrategy: "greedy"},
		}

		_, err := runner.Run(ctx, j)

		f := AsFailure(err)
		Expect(f.Code).To(Equal(CodeInvalidQubitParams))
		Expect(*f.BatchIndex).To(Equal(1))
		Expect(f.Error()).To(HavePrefix("item 1: InvalidInput.QubitParams"))
	})

	It("should not set an index for a single item", func() {
		j := tinyJob()
		j.QubitParams = qubit.Params{Name: "nope"}

		_, err := runner.Run(ctx, j)

		f := AsFailure(err)
		Expect(f.BatchIndex).To(BeNil())
	})

	It("should reject invalid logical counts", func() {
		j := tinyJob()
		j.LogicalCounts.RotationCount = 1

		_, err := runner.Run(ctx, j)
		Expect(AsFailure(err).Code).To(Equal(CodeInvalidLogicalCounts))
	})

	It("should fail on an algorithm without resources", func() {
		j := tinyJob()
		j.LogicalCounts = counts.LogicalCounts{NumQubits: 1}

		_, err := runner.Run(ctx, j)
		Expect(AsFailure(err).Code).To(Equal(CodeAlgorithmHasNoResources))
	})

	It("should fail if the max duration is too small", func() {
		j := tinyJob()
		j.Constraints.MaxDuration = ptr("100ns")

		_, err := runner.Run(ctx, j)
		Expect(AsFailure(err).Code).To(Equal(CodeMaxDurationTooSmall))
	})

	It("should stop on a canceled context", func() {
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := runner.Run(canceled, tinyJob())
		Expect(err).To(MatchError(context.Canceled))
	})

	It("should record estimates", func() {
		db, err := sql.Open("sqlite3",
			filepath.Join(GinkgoT().TempDir(), "run.sqlite3"))
		Expect(err).ToNot(HaveOccurred())

		recorder := datarecording.NewWithDB(db)
		defer recorder.Close()

		runner = MakeRunnerBuilder().WithRecorder(recorder).Build()

		_, err = runner.Run(ctx, tinyJob())
		Expect(err).ToNot(HaveOccurred())

		var n int
		Expect(db.QueryRow("SELECT COUNT(*) FROM " +
			datarecording.EstimateTable).Scan(&n)).To(Succeed())
		Expect(n).To(Equal(1))
		Expect(recorder.ListTables()).To(ContainElements(
			datarecording.EstimateTable, datarecording.FactoryTable))
	})

	It("should report progress to a monitor", func() {
		monitor := monitoring.NewMonitor()
		runner = MakeRunnerBuilder().WithMonitor(monitor).Build()

		results, err := runner.Run(ctx, tinyJob())
		Expect(err).ToNot(HaveOccurred())
		Expect(results).To(HaveLen(1))
	})

	It("should find factories", func() {
		factories, err := runner.FindFactories(Params{}, 1e-1)
		Expect(err).ToNot(HaveOccurred())
		Expect(factories).To(HaveLen(1))
		Expect(factories[0].NumRounds).To(Equal(1))
	})
})
