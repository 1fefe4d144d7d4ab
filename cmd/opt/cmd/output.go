package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/donaldgifford/osrs-price-tracker/internal/views"
	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printItemsTable(items []domain.ItemWithPrice) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tNAME\tPRICE\tTREND\tVOLUME\tMEMBERS\n")
	for i := range items {
		it := &items[i]
		tw.writef("%d\t%s\t%s\t%s\t%s\t%v\n",
			it.ID,
			truncate(it.Name, 40),
			gp(it.CurrentPrice),
			str(it.CurrentTrend),
			count(it.Volume),
			it.Members,
		)
	}
	return tw.finish()
}

func printItemDetail(it *domain.ItemWithPrice) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID:\t%d\n", it.ID)
	tw.writef("Name:\t%s\n", it.Name)
	tw.writef("Members:\t%v\n", it.Members)
	tw.writef("Value:\t%.0f gp\n", it.Value)
	tw.writef("High alch:\t%s\n", gp(it.HighAlch))
	tw.writef("Low alch:\t%s\n", gp(it.LowAlch))
	if it.DailyLimit != nil {
		tw.writef("Buy limit:\t%d\n", *it.DailyLimit)
	}
	tw.writef("Price:\t%s (%s)\n", gp(it.CurrentPrice), str(it.CurrentTrend))
	tw.writef("Today:\t%s (%s)\n", gp(it.TodayPrice), str(it.TodayTrend))
	tw.writef("Volume:\t%s\n", count(it.Volume))
	if it.FetchedAt != nil {
		tw.writef("Fetched:\t%s\n", it.FetchedAt.Format("2006-01-02 15:04:05"))
	}
	return tw.finish()
}

func printEquipmentTable(rows []views.EquipmentEfficiency) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tNAME\tSLOT\tPRICE\tSTRENGTH\tPRAYER\n")
	for i := range rows {
		r := &rows[i]
		tw.writef("%d\t%s\t%s\t%s\t%s\t%s\n",
			r.ItemID,
			truncate(r.ItemName, 40),
			r.Slot,
			gp(r.CurrentPrice),
			stat(r.Stats[domain.StatMeleeStrength]),
			stat(r.Stats[domain.StatPrayerBonus]),
		)
	}
	return tw.finish()
}

func printOptimalTable(attribute string, rows []views.OptimalEquipment) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("SLOT\tID\tNAME\tPRICE\t%s\tPER GP\n", attribute)
	for i := range rows {
		r := &rows[i]
		tw.writef("%s\t%d\t%s\t%.0f\t%g\t%g\n",
			r.Slot,
			r.ItemID,
			truncate(r.ItemName, 40),
			r.CurrentPrice,
			r.AttributeValue,
			r.Efficiency,
		)
	}
	return tw.finish()
}

func printConsumablesTable(rows []views.ConsumableSummary) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tNAME\tPRICE\tBITES\tEFFECT\tAMOUNT\tPER GP\n")
	for i := range rows {
		r := &rows[i]
		effects := make([]domain.EffectType, 0, len(r.Effects))
		for t := range r.Effects {
			effects = append(effects, t)
		}
		slices.Sort(effects)
		for j, t := range effects {
			e := r.Effects[t]
			id, name, price := "", "", ""
			if j == 0 {
				id, name, price = fmt.Sprint(r.ItemID), truncate(r.ItemName, 40), gp(r.CurrentPrice)
			}
			tw.writef("%s\t%s\t%s\t%d\t%s\t%g\t%s\n",
				id, name, price, r.Bites, effectLabel(t, e.Skill), e.Amount, ratio(e.Efficiency))
		}
	}
	return tw.finish()
}

func printEffectTable(rows []views.EffectRanking) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tNAME\tPRICE\tEFFECT\tAMOUNT\tBITES\tPER GP\n")
	for i := range rows {
		r := &rows[i]
		tw.writef("%d\t%s\t%.0f\t%s\t%g\t%d\t%g\n",
			r.ItemID,
			truncate(r.ItemName, 40),
			r.CurrentPrice,
			effectLabel(r.EffectType, r.Skill),
			r.Amount,
			r.Bites,
			r.Efficiency,
		)
	}
	return tw.finish()
}

func printHealingTable(rows []views.HealingFood) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tNAME\tPRICE\tHEALS\tBITES\tHP/GP\tHP/BITE\n")
	for i := range rows {
		r := &rows[i]
		tw.writef("%d\t%s\t%.0f\t%g\t%d\t%g\t%g\n",
			r.ItemID,
			truncate(r.ItemName, 40),
			r.CurrentPrice,
			r.Healing,
			r.Bites,
			r.HealingPerGP,
			r.HealingPerBite,
		)
	}
	return tw.finish()
}

func printConsumableMatches(rows []views.ConsumableMatch) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tNAME\tPRICE\tEFFECT\tAMOUNT\tBITES\n")
	for i := range rows {
		r := &rows[i]
		for j, e := range r.Effects {
			id, name, price := "", "", ""
			if j == 0 {
				id, name, price = fmt.Sprint(r.ItemID), truncate(r.ItemName, 40), gp(r.CurrentPrice)
			}
			tw.writef("%s\t%s\t%s\t%s\t%g\t%d\n",
				id, name, price, effectLabel(e.EffectType, e.Skill), e.Amount, e.Bites)
		}
	}
	return tw.finish()
}

func printJobRunsTable(runs []domain.JobRun) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("JOB\tSTATUS\tSTARTED\tCOMPLETED\tROWS\tERROR\n")
	for i := range runs {
		r := &runs[i]
		completed := "-"
		if r.CompletedAt != nil {
			completed = r.CompletedAt.Format("2006-01-02 15:04:05")
		}
		rows := "-"
		if r.RowsAffected != nil {
			rows = fmt.Sprint(*r.RowsAffected)
		}
		tw.writef("%s\t%s\t%s\t%s\t%s\t%s\n",
			r.JobName,
			r.Status,
			r.StartedAt.Format("2006-01-02 15:04:05"),
			completed,
			rows,
			truncate(r.ErrorText, 40),
		)
	}
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func effectLabel(t domain.EffectType, skill string) string {
	if skill == "" {
		return string(t)
	}
	return string(t) + ":" + skill
}

func gp(p *float64) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%.0f", *p)
}

func ratio(p *float64) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *p)
}

func stat(v views.StatValue) string {
	if v.Value == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *v.Value)
}

func str(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func count(n *int64) string {
	if n == nil {
		return "-"
	}
	return fmt.Sprint(*n)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
