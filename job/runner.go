package job

import (
	"context"
	"fmt"
	"runtime"

	"github.com/go-logr/logr"
	"github.com/rs/xid"
	"golang.org/x/sync/errgroup"

	"github.com/sarchlab/qre/counts"
	"github.com/sarchlab/qre/datarecording"
	"github.com/sarchlab/qre/monitoring"
	"github.com/sarchlab/qre/tfactory"
)

// RunnerBuilder can build runners.
type RunnerBuilder struct {
	log         logr.Logger
	recorder    datarecording.DataRecorder
	monitor     *monitoring.Monitor
	parallelism int
}

// MakeRunnerBuilder creates a RunnerBuilder that runs as many items in
// parallel as there are CPUs.
func MakeRunnerBuilder() RunnerBuilder {
	return RunnerBuilder{
		log:         logr.Discard(),
		parallelism: runtime.NumCPU(),
	}
}

// WithLogger sets the logger.
func (b RunnerBuilder) WithLogger(log logr.Logger) RunnerBuilder {
	b.log = log
	return b
}

// WithRecorder records the searched factories and the estimates.
func (b RunnerBuilder) WithRecorder(r datarecording.DataRecorder) RunnerBuilder {
	b.recorder = r
	return b
}

// WithMonitor reports progress to a monitor.
func (b RunnerBuilder) WithMonitor(m *monitoring.Monitor) RunnerBuilder {
	b.monitor = m
	return b
}

// WithParallelism sets how many items run at the same time.
func (b RunnerBuilder) WithParallelism(n int) RunnerBuilder {
	b.parallelism = n
	return b
}

// Build creates the runner.
func (b RunnerBuilder) Build() *Runner {
	if b.parallelism <= 0 {
		panic("parallelism must be positive")
	}

	r := &Runner{
		log:         b.log,
		recorder:    b.recorder,
		monitor:     b.monitor,
		parallelism: b.parallelism,
	}

	if b.recorder != nil {
		r.estimates = datarecording.NewEstimateRecorder(b.recorder)
	}

	return r
}

// Runner runs jobs.
type Runner struct {
	log         logr.Logger
	recorder    datarecording.DataRecorder
	estimates   *datarecording.EstimateRecorder
	monitor     *monitoring.Monitor
	parallelism int
}

// Run estimates every item of the job. Results are in item order. All
// items are validated before any search starts. If several items fail, the
// failure of the lowest item is returned. The returned error is always a
// *Failure, unless the context is canceled.
func (r *Runner) Run(ctx context.Context, j *Job) ([]*Result, error) {
	if err := j.LogicalCounts.Validate(); err != nil {
		return nil, newFailure(CodeInvalidLogicalCounts, err)
	}

	all := j.AllParams()
	setups := make([]*setup, len(all))

	for i, p := range all {
		s, err := p.resolve(&j.LogicalCounts)
		if err != nil {
			return nil, r.withIndex(j, i, err)
		}

		setups[i] = s
	}

	jobID := xid.New().String()
	r.log.Info("running job", "jobID", jobID, "items", len(all))

	var bar *monitoring.ProgressBar
	if r.monitor != nil {
		bar = r.monitor.CreateProgressBar("job "+jobID, uint64(len(all)))
		defer r.monitor.CompleteProgressBar(bar)
	}

	results := make([]*Result, len(all))
	errs := make([]error, len(all))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallelism)

	for i := range all {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			if bar != nil {
				bar.IncrementInProgress(1)
				defer bar.MoveInProgressToFinished(1)
			}

			res, err := r.runItem(jobID, i, &j.LogicalCounts, all[i], setups[i])
			if err != nil {
				errs[i] = err
				return err
			}

			results[i] = res

			return nil
		})
	}

	waitErr := g.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, r.withIndex(j, i, err)
		}
	}

	if waitErr != nil {
		return nil, waitErr
	}

	if r.recorder != nil {
		r.recorder.Flush()
	}

	return results, nil
}

func (r *Runner) withIndex(j *Job, i int, err error) *Failure {
	f := AsFailure(err)
	if j.IsBatch() {
		f.BatchIndex = &i
	}

	r.log.Error(f, "job failed", "code", f.Code)

	return f
}

func (r *Runner) runItem(
	jobID string,
	index int,
	c *counts.LogicalCounts,
	p Params,
	s *setup,
) (*Result, error) {
	log := r.log.WithValues("jobID", jobID, "item", index)
	search, done := r.newSearch(log, jobID, index, s)
	defer done()

	b := tfactory.MakeEstimationBuilder().
		WithErrorCorrection(s.code).
		WithQubit(s.qubit).
		WithFactoryBuilder(search).
		WithOverhead(c).
		WithErrorBudgetStrategy(s.strategy).
		WithLogger(log)

	if v := p.Constraints.LogicalDepthFactor; v != nil {
		b = b.WithLogicalDepthFactor(*v)
	}

	if v := p.Constraints.MaxTFactories; v != nil {
		b = b.WithMaxFactories(*v)
	}

	if s.maxDuration != nil {
		b = b.WithMaxDuration(*s.maxDuration)
	}

	if v := p.Constraints.MaxPhysicalQubits; v != nil {
		b = b.WithMaxPhysicalQubits(*v)
	}

	estimation := b.Build()

	var (
		estimates []*tfactory.Result
		err       error
	)

	switch s.estimateType {
	case Frontier:
		estimates, err = estimation.BuildFrontier(s.budget.Clone())
	default:
		var single *tfactory.Result

		single, err = estimation.Estimate(s.budget.Clone())
		estimates = []*tfactory.Result{single}
	}

	if err != nil {
		return nil, err
	}

	if r.estimates != nil {
		r.estimates.Record(jobID, index, estimates)
	}

	result := &Result{
		Status:        StatusSuccess,
		JobParams:     s.resolvedParams(p),
		LogicalCounts: *c,
	}

	if s.estimateType == Frontier {
		for _, e := range estimates {
			result.FrontierEntries = append(result.FrontierEntries,
				newEstimate(c, s.qubit, e))
		}
	} else {
		result.Estimate = newEstimate(c, s.qubit, estimates[0])
	}

	if r.monitor != nil {
		r.monitor.RegisterObject(fmt.Sprintf("%s/%d", jobID, index), result)
	}

	log.V(1).Info("item done", "estimates", len(estimates))

	return result, nil
}

func (r *Runner) newSearch(
	log logr.Logger,
	jobID string,
	index int,
	s *setup,
) (*tfactory.Search, func()) {
	search := tfactory.MakeBuilder().
		WithTemplates(s.templates).
		WithLogger(log).
		Build()

	if r.recorder != nil {
		search.AcceptHook(datarecording.NewFactoryTracer(
			r.recorder, fmt.Sprintf("%s/%d", jobID, index)))
	}

	if r.monitor == nil {
		return search, func() {}
	}

	bar := r.monitor.CreateProgressBar(
		fmt.Sprintf("factory search %s/%d", jobID, index), 0)
	search.AcceptHook(monitoring.NewProgressHook(
		bar, tfactory.HookPosRoundsSearched))

	return search, func() { r.monitor.CompleteProgressBar(bar) }
}

// FindFactories searches the T factories that reach outputErrorRate with
// the qubit, QEC scheme, and distillation units of the parameters.
func (r *Runner) FindFactories(
	p Params,
	outputErrorRate float64,
) ([]*TFactory, error) {
	c := &counts.LogicalCounts{NumQubits: 1, TCount: 1}

	s, err := p.resolve(c)
	if err != nil {
		return nil, err
	}

	search, done := r.newSearch(r.log, xid.New().String(), 0, s)
	defer done()

	found := search.FindNondominatedTFactories(
		s.code, s.qubit, outputErrorRate, s.code.MaxOddCodeDistance())

	out := make([]*TFactory, 0, len(found))
	for _, f := range found {
		out = append(out, newTFactory(f))
	}

	return out, nil
}
