package nav

import (
	"context"
	"strings"

	"vesta/core/store"
)

// Collection mutations. Each one is a whole-row write against the store with
// last-writer-wins semantics; there is no merge and no versioning.

func (c *Controller) AddKnowledgeSource(ctx context.Context, url string) *store.KnowledgeSource {
	if c.User() == nil || c.deps.Knowledge == nil {
		return nil
	}
	src := &store.KnowledgeSource{URL: strings.TrimSpace(url), Status: store.SourceCrawling}
	if err := c.deps.Knowledge.Add(ctx, src); err != nil {
		c.logErr("knowledge add", err)
		return nil
	}
	c.audit(ctx, ActionSourceAdded, src.URL)
	return src
}

func (c *Controller) DeleteKnowledgeSource(ctx context.Context, id string) {
	if c.User() == nil || c.deps.Knowledge == nil {
		return
	}
	if err := c.deps.Knowledge.Delete(ctx, id); err != nil {
		c.logErr("knowledge delete", err)
		return
	}
	c.audit(ctx, ActionSourceDeleted, id)
}

func (c *Controller) KnowledgeSources(ctx context.Context) []store.KnowledgeSource {
	if c.deps.Knowledge == nil {
		return nil
	}
	sources, err := c.deps.Knowledge.List(ctx)
	if err != nil {
		c.logErr("knowledge list", err)
		return nil
	}
	return sources
}

func (c *Controller) AddDismissalRule(ctx context.Context, title, reason string) *store.DismissalRule {
	if c.User() == nil || c.deps.Rules == nil {
		return nil
	}
	rule := &store.DismissalRule{Title: strings.TrimSpace(title), Reason: strings.TrimSpace(reason)}
	if rule.Title == "" {
		return nil
	}
	if err := c.deps.Rules.Add(ctx, rule); err != nil {
		c.logErr("rule add", err)
		return nil
	}
	c.audit(ctx, ActionRuleAdded, rule.Title)
	return rule
}

func (c *Controller) DeleteDismissalRule(ctx context.Context, id string) {
	if c.User() == nil || c.deps.Rules == nil {
		return
	}
	if err := c.deps.Rules.Delete(ctx, id); err != nil {
		c.logErr("rule delete", err)
		return
	}
	c.audit(ctx, ActionRuleDeleted, id)
}

func (c *Controller) DismissalRules(ctx context.Context) []store.DismissalRule {
	if c.deps.Rules == nil {
		return nil
	}
	rules, err := c.deps.Rules.List(ctx)
	if err != nil {
		c.logErr("rule list", err)
		return nil
	}
	return rules
}

func (c *Controller) Reports(ctx context.Context) []store.AnalysisReport {
	user := c.User()
	if user == nil || c.deps.Reports == nil {
		return nil
	}
	reports, err := c.deps.Reports.List(ctx, user.ID)
	if err != nil {
		c.logErr("reports list", err)
		return nil
	}
	return reports
}

func (c *Controller) AuditLogs(ctx context.Context, limit int) []store.AuditRecord {
	if c.User() == nil || c.deps.Audits == nil {
		return nil
	}
	logs, err := c.deps.Audits.List(ctx, limit)
	if err != nil {
		c.logErr("audit list", err)
		return nil
	}
	return logs
}

func (c *Controller) logErr(op string, err error) {
	if c.deps.Logger != nil {
		c.deps.Logger.Errorf("%s: %v", op, err)
	}
}
