package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"formpilot/internal/domain"
	"formpilot/internal/port"
)

// DualExtractor wraps two RecordExtractors, runs both in parallel, and merges
// their records field by field. The primary's value wins on disagreement; the
// secondary only fills fields the primary left null.
type DualExtractor struct {
	primary   port.RecordExtractor
	secondary port.RecordExtractor
}

// NewDualExtractor creates a DualExtractor from primary and secondary extractors.
func NewDualExtractor(primary, secondary port.RecordExtractor) *DualExtractor {
	return &DualExtractor{primary: primary, secondary: secondary}
}

func (d *DualExtractor) Extract(ctx context.Context, input port.ExtractInput) (*port.ExtractOutput, error) {
	type result struct {
		output *port.ExtractOutput
		err    error
	}

	var wg sync.WaitGroup
	primaryCh := make(chan result, 1)
	secondaryCh := make(chan result, 1)

	wg.Add(2)
	go func() {
		defer wg.Done()
		out, err := d.primary.Extract(ctx, input)
		primaryCh <- result{out, err}
	}()
	go func() {
		defer wg.Done()
		out, err := d.secondary.Extract(ctx, input)
		secondaryCh <- result{out, err}
	}()

	wg.Wait()
	close(primaryCh)
	close(secondaryCh)

	pResult := <-primaryCh
	sResult := <-secondaryCh

	// Both failed
	if pResult.err != nil && sResult.err != nil {
		return nil, fmt.Errorf("both extractors failed: primary: %v; secondary: %v", pResult.err, sResult.err)
	}

	// Only secondary succeeded
	if pResult.err != nil {
		log.Printf("extractor.DualExtractor: primary extractor failed (%v), using secondary only", pResult.err)
		sResult.output.FieldProvenance = map[string]string{"_source": "secondary_only"}
		sResult.output.SecondaryModel = sResult.output.ModelUsed
		return sResult.output, nil
	}

	// Only primary succeeded
	if sResult.err != nil {
		log.Printf("extractor.DualExtractor: secondary extractor failed (%v), using primary only", sResult.err)
		pResult.output.FieldProvenance = map[string]string{"_source": "primary_only"}
		return pResult.output, nil
	}

	// Both succeeded: merge
	merged, provenance := MergeRecords(pResult.output.Record, sResult.output.Record)
	return &port.ExtractOutput{
		Record:          merged,
		ModelUsed:       pResult.output.ModelUsed,
		RawJSON:         pResult.output.RawJSON,
		FieldProvenance: provenance,
		SecondaryModel:  sResult.output.ModelUsed,
	}, nil
}

// MergeRecords merges two records field by field. For each field: agreement
// keeps the shared value, a null on one side takes the other side's value, and
// disagreement keeps the primary's value. The provenance map records the
// outcome per field; fields null on both sides are omitted from it.
func MergeRecords(primary, secondary *domain.CaseRecord) (*domain.CaseRecord, map[string]string) {
	pm := recordMap(primary)
	sm := recordMap(secondary)

	provenance := make(map[string]string)
	merged := make(map[string]*string, len(pm))

	for _, name := range domain.FieldNames() {
		p, s := pm[name], sm[name]
		switch {
		case p == nil && s == nil:
			// leave null
		case p != nil && s == nil:
			merged[name] = p
			provenance[name] = "primary"
		case p == nil && s != nil:
			merged[name] = s
			provenance[name] = "secondary"
		case *p == *s:
			merged[name] = p
			provenance[name] = "agree"
		default:
			merged[name] = p
			provenance[name] = "disagreement"
		}
	}

	return recordFromMap(merged), provenance
}

func recordMap(r *domain.CaseRecord) map[string]*string {
	m := make(map[string]*string)
	for _, f := range r.Fields() {
		m[f.Name] = f.Value
	}
	return m
}

func recordFromMap(m map[string]*string) *domain.CaseRecord {
	// Field names are the record's own JSON tags, so the round trip is lossless.
	b, _ := json.Marshal(m)
	var r domain.CaseRecord
	_ = json.Unmarshal(b, &r)
	return &r
}
