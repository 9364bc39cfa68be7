package services

import "html/template"

var verificationTemplate = template.Must(template.New("verification").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Confirm your email</h2>
  <p>Hello {{.Name}},</p>
  <p>Thank you for submitting <strong>{{.Title}}</strong> to our blog. Enter the code below to confirm your email address:</p>
  <p style="font-size: 28px; letter-spacing: 6px; font-weight: bold;">{{.Code}}</p>
  <p>The code expires in {{.Minutes}} minutes. If you did not submit a post, you can ignore this email.</p>
</body>
</html>`))

var newPostTemplate = template.Must(template.New("new-post").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>New post awaiting review</h2>
  <p><strong>{{.Post.Title}}</strong></p>
  <p>By {{.Post.AuthorName}} &lt;{{.Post.AuthorEmail}}&gt;{{if .Post.AuthorPhone}}, {{.Post.AuthorPhone}}{{end}}</p>
  <p><a href="{{.AdminURL}}">Open the dashboard</a> to approve or reject it.</p>
</body>
</html>`))

var newCommentTemplate = template.Must(template.New("new-comment").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>New comment awaiting review</h2>
  <p>On <strong>{{.Post.Title}}</strong>:</p>
  <blockquote style="border-left: 3px solid #ccc; padding-left: 12px;">{{.Comment.Content}}</blockquote>
  <p><a href="{{.AdminURL}}">Open the dashboard</a> to moderate it.</p>
</body>
</html>`))

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Thanks for subscribing</h2>
  <p>You will receive news about our latest projects and articles from <a href="{{.SiteURL}}">our blog</a>.</p>
  <p style="font-size: 12px; color: #777;">Changed your mind? <a href="{{.UnsubscribeURL}}">Unsubscribe</a>.</p>
</body>
</html>`))
