package lessons

import (
	"github.com/fatali-fataliyev/lesson_board/internal/render"
)

const helloSource = `# This is how you display code
import streamlit as st

st.title("Hello, Streamlit!")
st.write("This is my first app!")`

func renderGettingStarted(env Env) (sidebar, main []render.Block) {
	sidebar = []render.Block{
		render.Header("Navigation"),
		render.Text("Use this sidebar to navigate through different sections!"),
	}

	main = []render.Block{
		render.Title("🚀 Welcome to Streamlit!"),
		render.Markdown("### Your First Interactive Web App"),
		render.Text("This is your first app! Turning scripts into interactive web applications is easy. Let's explore some basic features."),

		render.Header("📝 Text and Markdown"),
		render.Text("This is regular text."),
		render.Markdown("### This is a markdown header\nYou can use **bold text**, *italic text*, and even `code snippets`.\n\n- Bullet points work too!\n- And numbered lists:\n  1. First item\n  2. Second item\n  3. Third item"),

		render.Header("📊 Displaying Data"),
		render.Markdown("**Name:** Python Student"),
		render.Markdown("**Age:** 18"),
		render.Markdown("**Favorite Language:** Python"),
		render.Subheader("Lists and Dictionaries"),
		render.JSON("My List", []string{"Apple", "Banana", "Cherry"}),
		render.JSON("My Dictionary", map[string]any{"Name": "Alice", "Age": 20, "City": "Pythonville"}),

		render.Header("⏰ Real-time Updates"),
		render.Markdown("**Current time:** " + env.Now.Format("2006-01-02 15:04:05")),

		render.Header("💬 Different Types of Messages"),
		render.Success("This is a success message! 🎉"),
		render.Info("This is an info message! ℹ️"),
		render.Warning("This is a warning message! ⚠️"),
		render.Error("This is an error message! ❌"),

		render.Header("💻 Code Display"),
		render.Code("python", helloSource),

		render.Expander("🤔 How to run this app",
			render.Markdown("1. Start the lesson board server\n2. Create a session\n3. Open lesson 1 in the client\n4. Interact with the widgets"),
		),
		render.Divider(),
		footer("Basic Widgets - Learn about buttons, sliders, and more!"),
	}
	return sidebar, main
}

func handleGettingStarted(ev Event) ([]render.Block, error) {
	switch ev.Name {
	case "surprise":
		return []render.Block{
			render.Balloons(),
			render.Text("🎊 Congratulations! You just used your first widget!"),
		}, nil
	}
	return nil, unknownEvent(GettingStarted, ev)
}
