package source

const rssBody = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Example Blog</title>
<link>https://example.com/</link>
<description>Posts about examples</description>
<item>
<title>First post</title>
<link>https://example.com/first</link>
<guid>first-guid</guid>
<description>&lt;p&gt;Hello &lt;b&gt;world&lt;/b&gt;&lt;/p&gt;</description>
<pubDate>Tue, 05 Mar 2024 10:30:00 +0000</pubDate>
<enclosure url="https://example.com/cover.png" type="image/png" length="10"/>
</item>
<item>
<title>Second post</title>
<link>https://example.com/second</link>
</item>
<item>
<description></description>
</item>
</channel>
</rss>`

const untitledRSSBody = `<?xml version="1.0"?>
<rss version="2.0"><channel><link>https://example.com/</link></channel></rss>`

const atomBody = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
<title>Atom Example</title>
<id>urn:uuid:feed</id>
<updated>2024-03-05T10:30:00Z</updated>
<entry>
<title>Atom entry</title>
<id>urn:uuid:entry-1</id>
<link href="https://example.org/entry-1"/>
<updated>2024-03-05T10:30:00Z</updated>
<summary>Short summary</summary>
<content type="html">&lt;p&gt;Full body&lt;/p&gt;</content>
</entry>
</feed>`

const jsonFeedBody = `{
  "version": "https://jsonfeed.org/version/1.1",
  "title": "JSON Example",
  "items": [
    {"id": "1", "url": "https://example.net/1", "title": "Json item", "content_html": "<p>Json body</p>"}
  ]
}`

const plainJSONBody = `{"status": "ok", "items": []}`

const htmlBody = `<!DOCTYPE html>
<html>
<head>
<title>Example site</title>
<link rel="stylesheet" href="/style.css">
<link rel="alternate" type="application/rss+xml" title="RSS" href="/feed.xml">
<link rel="alternate" type="application/atom+xml" href="https://example.com/atom.xml">
<link rel="alternate" type="application/feed+json" href="feed.json">
<link rel="alternate" hreflang="de" href="/de/">
</head>
<body><a href="https://github.com/owner/repo">code</a></body>
</html>`
