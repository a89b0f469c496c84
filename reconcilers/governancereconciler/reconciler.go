/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package governancereconciler

import (
	"context"
	"fmt"

	"chainguard.dev/governance/command"
	"chainguard.dev/governance/event"
	"chainguard.dev/governance/governance"
	"chainguard.dev/governance/reconcilers/githubreconciler"
	"chainguard.dev/governance/reconcilers/labelreconciler"
	"github.com/chainguard-dev/clog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "chainguard.dev/governance/reconcilers/governancereconciler"

// Result summarizes a run.
type Result struct {
	Resource *githubreconciler.Resource

	// Skipped is set when the event was ignored or no rule applies.
	Skipped bool

	// Commands are the commands found in the event body.
	Commands []string

	// Labels is the snapshot every prefix was planned against.
	Labels []string

	// Plans holds one plan per rule, in configuration order.
	Plans []*labelreconciler.Plan
}

// Reconciler runs the governance rules for an event.
type Reconciler struct {
	client    githubreconciler.Client
	labelOpts []labelreconciler.Option
	tracer    trace.Tracer
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLabelOptions passes options to the underlying label reconciler.
func WithLabelOptions(opts ...labelreconciler.Option) Option {
	return func(r *Reconciler) {
		r.labelOpts = append(r.labelOpts, opts...)
	}
}

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Reconciler) {
		r.tracer = tp.Tracer(tracerName)
	}
}

// New creates a Reconciler.
func New(client githubreconciler.Client, opts ...Option) *Reconciler {
	r := &Reconciler{
		client: client,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile applies every rule of cfg that matches evt.
func (r *Reconciler) Reconcile(ctx context.Context, evt *event.Context, cfg *governance.Config) (_ *Result, err error) {
	if evt == nil {
		return nil, event.ErrNoContext
	}
	if cfg == nil {
		cfg = &governance.Config{}
	}

	res := evt.Resource()
	ctx, span := r.tracer.Start(ctx, "governance.reconcile", trace.WithAttributes(
		attribute.String("resource", res.String()),
		attribute.String("event", evt.Name),
		attribute.String("action", evt.Action),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}()

	log := clog.FromContext(ctx).With("resource", res.String(), "event", evt.Name, "action", evt.Action)
	ctx = clog.WithLogger(ctx, log)
	result := &Result{Resource: res}

	if evt.Ignored() {
		log.With("sender", evt.Sender).Info("Ignoring event")
		result.Skipped = true
		return result, nil
	}

	rules := cfg.Rules(res.IsPullRequest())
	if len(rules) == 0 {
		log.With("type", res.Type).Info("No governance rules for resource type")
		result.Skipped = true
		return result, nil
	}

	cmds := command.Parse(evt.Body)
	result.Commands = cmds.Texts()
	log.With("commands", result.Commands).Debug("Parsed commands")

	labels, err := r.client.ListLabels(ctx, res)
	if err != nil {
		return nil, fmt.Errorf("listing labels: %w", err)
	}
	result.Labels = labels

	labeler := labelreconciler.New(r.client, r.labelOpts...)
	for _, rule := range rules {
		plan, err := r.reconcilePrefix(ctx, labeler, &labelreconciler.Request{
			Resource: res,
			Rule:     rule,
			Commands: cmds,
			Labels:   labels,
			Opened:   evt.IsOpened(),
			HeadSHA:  evt.HeadSHA,
		})
		if err != nil {
			return nil, fmt.Errorf("reconciling prefix %q: %w", rule.Prefix, err)
		}
		result.Plans = append(result.Plans, plan)
	}

	log.With("prefixes", len(result.Plans)).Info("Completed governance")
	return result, nil
}

func (r *Reconciler) reconcilePrefix(ctx context.Context, labeler *labelreconciler.Reconciler, req *labelreconciler.Request) (*labelreconciler.Plan, error) {
	ctx, span := r.tracer.Start(ctx, "governance.prefix", trace.WithAttributes(
		attribute.String("prefix", req.Rule.Prefix),
	))
	defer span.End()

	plan, err := labeler.Reconcile(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.StringSlice("labels.add", plan.Add),
		attribute.StringSlice("labels.remove", plan.Remove),
		attribute.Bool("governed", plan.Governed),
	)
	return plan, nil
}
