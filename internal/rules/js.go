package rules

const presentJS = `() => typeof window.axe !== 'undefined' && typeof window.axe.run === 'function'`

// configureJS takes a map of rule id to enabled flag.
const configureJS = `(rules) => {
	window.axe.configure({
		rules: Object.keys(rules).map((id) => ({ id: id, enabled: rules[id] })),
	});
	return true;
}`

// runJS runs axe against selector (or the whole document) restricted to
// tags, and returns the violations in a flat shape.
const runJS = `(selector, tags) => {
	const context = selector ? selector : document;
	const options = tags && tags.length ? { runOnly: { type: 'tag', values: tags } } : {};
	return window.axe.run(context, options).then((results) => results.violations.map((v) => ({
		id: v.id,
		impact: v.impact || '',
		description: v.description,
		help: v.help,
		helpUrl: v.helpUrl,
		tags: v.tags,
		nodes: v.nodes.map((n) => ({
			target: n.target.map((t) => Array.isArray(t) ? t.join(' >>> ') : String(t)),
			html: n.html,
			failureSummary: n.failureSummary || '',
		})),
	})));
}`
