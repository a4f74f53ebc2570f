// Package orchestrator ties the digest source, download manager,
// placement and indexing together for one sync run.
package orchestrator

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/cperrin88/relsync/pkg/digest"
	"github.com/cperrin88/relsync/pkg/download"
	"github.com/cperrin88/relsync/pkg/hooks"
)

// Orchestrator runs the full sync pipeline: fetch expected digests,
// download and verify every artifact, place the verified ones, then
// rebuild the repository index once.
type Orchestrator struct {
	Source  DigestSource
	DL      Downloader
	Placer  Placer
	Indexer Indexer
	Scripts hooks.HookManager // optional pre-place / post-index scripts
	Events  Events
}

// New constructs an Orchestrator from existing components. Helper for
// wiring; Scripts may be nil.
func New(src DigestSource, dl Downloader, placer Placer, indexer Indexer, scripts hooks.HookManager, events Events) *Orchestrator {
	return &Orchestrator{
		Source:  src,
		DL:      dl,
		Placer:  placer,
		Indexer: indexer,
		Scripts: scripts,
		Events:  events,
	}
}

// Sync executes one run. A metadata failure aborts before any download
// starts: unverified binary artifacts must never be fetched. Download
// failures are per-artifact and reported in the Outcome; only verified
// artifacts reach placement, and the index is rebuilt only when at least
// one artifact was placed.
func (o *Orchestrator) Sync(ctx context.Context, rel digest.Release, requests []download.ArtifactRequest, opts Options) (Outcome, error) {
	if o.Source == nil {
		return Outcome{}, fmt.Errorf("digest source is not configured")
	}
	if o.DL == nil {
		return Outcome{}, fmt.Errorf("download manager is not configured")
	}

	o.emit(Event{Phase: "metadata", Msg: rel.Owner + "/" + rel.Repo + "@" + rel.Tag})
	store, err := o.Source.FetchDigests(ctx, rel)
	if err != nil {
		return Outcome{}, err
	}

	o.emit(Event{Phase: "downloading", Msg: fmt.Sprintf("%d artifacts", len(requests))})
	outcome := Outcome{Results: o.DL.DownloadAll(ctx, requests, store)}

	placeErr := o.placeVerified(ctx, requests, &outcome, opts)

	var indexErr error
	if len(outcome.Placed) > 0 && !opts.SkipIndex && o.Indexer != nil {
		o.emit(Event{Phase: "indexing", Msg: opts.RepoDir})
		indexErr = o.Indexer.Index(ctx, opts.RepoDir)
		if indexErr == nil {
			indexErr = o.runScript(hooks.PostIndex, hooks.HookContext{RepoDir: opts.RepoDir})
		}
	}

	o.emit(Event{Phase: "done"})
	return outcome, stderrors.Join(placeErr, indexErr)
}

// placeVerified hands every Verified artifact to the placement
// collaborator. Partial or mismatched downloads are never placed.
func (o *Orchestrator) placeVerified(ctx context.Context, requests []download.ArtifactRequest, outcome *Outcome, opts Options) error {
	if o.Placer == nil {
		return nil
	}
	var errs []error
	for i, res := range outcome.Results {
		if res.State != download.StateVerified {
			continue
		}
		localPath := requests[i].DestinationPath
		o.emit(Event{Phase: "placing", ID: res.Filename, Msg: localPath})

		if err := o.runScript(hooks.PrePlace, hooks.HookContext{
			ArtifactName: res.Filename,
			ArtifactPath: localPath,
			RepoDir:      opts.RepoDir,
		}); err != nil {
			errs = append(errs, err)
			continue
		}

		placed, err := o.Placer.Place(ctx, localPath, res.Filename)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		outcome.Placed = append(outcome.Placed, placed)
	}
	return stderrors.Join(errs...)
}

func (o *Orchestrator) runScript(hookType hooks.HookType, ctx hooks.HookContext) error {
	if o.Scripts == nil {
		return nil
	}
	return o.Scripts.Execute(hookType, ctx)
}

func (o *Orchestrator) emit(e Event) {
	if o.Events.OnEvent != nil {
		o.Events.OnEvent(e)
	}
}
