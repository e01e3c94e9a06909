package browser

// HomePage is shown at startup when no location is given.
const HomePage = "home"

// builtinPages are served without touching the network.
var builtinPages = map[string]string{
	HomePage: `<title>TUI Browser Home</title><h1>Welcome to the TUI Browser!</h1><p>Type go &lt;url&gt; to navigate, search &lt;query&gt; to search, or back to go back.</p><img src="browser_icon.png" alt="Browser Icon"><ul><li>Example Link: <a href="example.com">Go to Example</a></li><li>Another Page: <a href="another_page">Another Local Page</a></li></ul>`,
	"another_page": `<title>Another Page</title><h1>Another Page</h1><p>You've navigated to another local page.</p><p>Go <a href="home">back home</a>.</p>`,
}
