package web

import (
	"fmt"
	"net/http"
)

// writeLoadingPage serves the page a browser sees while a recipe is written.
// The page opens an event stream on its own URL and follows the final redirect.
func writeLoadingPage(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, loadingHTML)
}

//nolint:misspell // CSS properties use American spelling
const loadingHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Cookbook - Importing recipe</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            display: flex;
            justify-content: center;
            align-items: center;
            height: 100vh;
            margin: 0;
            background: #FAFAFA;
        }
        .container {
            text-align: center;
            background: white;
            padding: 48px 64px;
            border-radius: 16px;
            border: 1px solid #C7C8CC;
            box-shadow: 0 4px 24px rgba(0,0,0,0.08);
        }
        h1 {
            color: #333F50;
            margin: 0 0 8px 0;
            font-size: 24px;
            font-weight: 600;
        }
        p {
            color: #7B8088;
            margin: 0;
            font-size: 16px;
        }
        .error { color: #C0392B; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Importing recipe</h1>
        <p id="status">Starting...</p>
    </div>
    <script>
        const status = document.getElementById("status");
        const source = new EventSource(window.location.href);
        const stages = ["extracting", "extracted", "analyzing", "analyzed", "creating", "created"];
        stages.forEach(function (stage) {
            source.addEventListener(stage, function (e) {
                status.textContent = JSON.parse(e.data).message;
            });
        });
        source.addEventListener("redirecting", function (e) {
            source.close();
            const event = JSON.parse(e.data);
            status.textContent = event.message;
            window.location.replace(event.url);
        });
        source.addEventListener("error", function (e) {
            source.close();
            status.className = "error";
            status.textContent = e.data ? JSON.parse(e.data).message : "Connection lost";
        });
    </script>
</body>
</html>
`
