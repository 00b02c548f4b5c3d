package api

import "net/http"

const landingHTML = `<!DOCTYPE html>
<html lang="nl">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>21Qubz Assistent</title>
<style>
  *, *::before, *::after { box-sizing: border-box; margin: 0; padding: 0; }
  body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; background: #f1f5f9; color: #0f172a; min-height: 100vh; display: flex; align-items: center; justify-content: center; }
  .card { max-width: 640px; width: 92%; background: #fff; border-radius: 12px; padding: 2rem; box-shadow: 0 20px 40px rgba(15,23,42,0.12); }
  h1 { font-size: 1.6rem; margin-bottom: 0.4rem; }
  .subtitle { color: #475569; margin-bottom: 1.5rem; }
  .section { margin-bottom: 1.5rem; }
  .section-title { font-size: 0.75rem; text-transform: uppercase; letter-spacing: 0.1em; color: #64748b; margin-bottom: 0.5rem; }
  #messages { border: 1px solid #e2e8f0; border-radius: 8px; padding: 0.75rem; height: 260px; overflow-y: auto; margin-bottom: 0.75rem; }
  .msg { margin-bottom: 0.6rem; white-space: pre-wrap; }
  .msg.user { color: #1d4ed8; }
  .sources { font-size: 0.8rem; color: #64748b; }
  form { display: flex; gap: 0.5rem; }
  input { flex: 1; padding: 0.6rem; border: 1px solid #cbd5e1; border-radius: 6px; }
  button { padding: 0.6rem 1rem; border: 0; border-radius: 6px; background: #16a34a; color: #fff; cursor: pointer; }
  .endpoint { font-family: "SF Mono", Menlo, monospace; font-size: 0.85rem; color: #4338ca; }
</style>
</head>
<body>
<div class="card">
  <h1>21Qubz Assistent</h1>
  <p class="subtitle">Vragen over 21Qubz, 21south en het ERP-systeem, beantwoord op basis van de documentatie.</p>

  <div class="section">
    <div id="messages"></div>
    <form id="chat">
      <input id="q" placeholder="Hoe maak ik een nieuwe klant aan?" autocomplete="off" required>
      <button type="submit">Vraag</button>
    </form>
  </div>

  <div class="section">
    <div class="section-title">Endpoints</div>
    <p><span class="endpoint">POST /api/chat</span> &middot; <span class="endpoint">POST /api/upload</span> &middot; <a href="/api/documents" class="endpoint">/api/documents</a></p>
    <p><a href="/api/benchmark/info" class="endpoint">/api/benchmark/info</a> &middot; <a href="/api/benchmark/results" class="endpoint">/api/benchmark/results</a></p>
    <p><a href="/health" class="endpoint">/health</a> &middot; <span class="endpoint">/mcp</span></p>
  </div>
</div>
<script>
  const form = document.getElementById('chat');
  const input = document.getElementById('q');
  const messages = document.getElementById('messages');
  function add(cls, text) {
    const el = document.createElement('div');
    el.className = 'msg ' + cls;
    el.textContent = text;
    messages.appendChild(el);
    messages.scrollTop = messages.scrollHeight;
    return el;
  }
  form.addEventListener('submit', async (e) => {
    e.preventDefault();
    const message = input.value.trim();
    if (!message) return;
    input.value = '';
    add('user', message);
    const reply = add('assistant', '...');
    try {
      const res = await fetch('/api/chat', { method: 'POST', headers: { 'Content-Type': 'application/json' }, body: JSON.stringify({ message }) });
      const data = await res.json();
      reply.textContent = data.response || data.error;
      if (data.sources && data.sources.length) {
        add('sources', 'Bronnen: ' + data.sources.join(', '));
      }
    } catch (err) {
      reply.textContent = 'Verbindingsfout';
    }
  });
</script>
</body>
</html>`

// NewLandingHandler returns an HTTP handler that serves the chat page at /.
func NewLandingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(landingHTML))
	}
}
