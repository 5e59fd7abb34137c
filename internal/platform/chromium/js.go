package chromium

// snapshotJS serializes every element of the document in document order.
// Parent is the index of the parent element (-1 for <html>).
const snapshotJS = `() => {
	const all = Array.from(document.querySelectorAll('*'));
	const index = new Map();
	all.forEach((el, i) => index.set(el, i));
	const elements = all.map((el, i) => {
		const attrs = {};
		for (const attr of el.attributes) {
			attrs[attr.name] = attr.value;
		}
		const style = window.getComputedStyle(el);
		const rect = el.getBoundingClientRect();
		const parent = el.parentElement && index.has(el.parentElement) ? index.get(el.parentElement) : -1;
		let text = '';
		if (el.children.length === 0 && el.textContent) {
			text = el.textContent.trim().slice(0, 80);
		}
		return {
			i: i,
			tag: el.tagName.toLowerCase(),
			id: el.id || '',
			class: Array.from(el.classList),
			attrs: attrs,
			parent: parent,
			style: {
				display: style.display,
				visibility: style.visibility,
				color: style.color,
				bg: style.backgroundColor,
			},
			b: [Math.round(rect.x), Math.round(rect.y), Math.round(rect.width), Math.round(rect.height)],
			disabled: el.matches(':disabled'),
			text: text,
		};
	});
	return { url: location.href, title: document.title, elements: elements };
}`

// activeElementJS describes document.activeElement, or returns null when
// focus rests on the body or nowhere.
const activeElementJS = `() => {
	const el = document.activeElement;
	if (!el || el === document.body || el === document.documentElement) {
		return null;
	}
	const attrs = {};
	for (const attr of el.attributes) {
		attrs[attr.name] = attr.value;
	}
	const all = Array.from(document.querySelectorAll('*'));
	return {
		i: all.indexOf(el),
		tag: el.tagName.toLowerCase(),
		id: el.id || '',
		class: Array.from(el.classList),
		attrs: attrs,
		parent: -1,
		disabled: el.matches(':disabled'),
	};
}`
